//go:build !ocr

package ocr

import (
	"errors"
	"image"
)

// ErrNotEnabled is returned by the stub engine compiled without the "ocr"
// build tag. Rebuild with -tags ocr to enable Tesseract recognition.
var ErrNotEnabled = errors.New("ocr: recognition not enabled; rebuild with -tags ocr")

// TesseractEngine is the stub compiled without the "ocr" build tag. Every
// recognition call fails with ErrNotEnabled.
type TesseractEngine struct {
	Languages []string
}

// NewTesseractEngine creates a stub engine.
func NewTesseractEngine(languages ...string) *TesseractEngine {
	return &TesseractEngine{Languages: languages}
}

// Recognize returns ErrNotEnabled.
func (e *TesseractEngine) Recognize(region *image.Gray) (string, []Word, error) {
	return "", nil, ErrNotEnabled
}
