//go:build ocr

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/scanlayout/model"
)

// TesseractEngine recognizes text with the Tesseract OCR engine via
// gosseract. A fresh client is created per call, which makes the engine
// safe for concurrent use at the cost of per-call setup.
type TesseractEngine struct {
	// Languages passed to Tesseract, e.g. ["rus", "eng"].
	Languages []string

	// PageSegMode controls Tesseract layout analysis. The default,
	// PSM_SINGLE_COLUMN, fits cropped cells and paragraph blocks.
	PageSegMode gosseract.PageSegMode
}

// NewTesseractEngine creates an engine recognizing Russian and English.
func NewTesseractEngine(languages ...string) *TesseractEngine {
	if len(languages) == 0 {
		languages = []string{"rus", "eng"}
	}
	return &TesseractEngine{
		Languages:   languages,
		PageSegMode: gosseract.PSM_SINGLE_COLUMN,
	}
}

// Recognize runs Tesseract over the region and returns the recognized text
// with region-relative word boxes. Words Tesseract reports with zero or
// negative confidence are dropped.
func (e *TesseractEngine) Recognize(region *image.Gray) (string, []Word, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return "", nil, fmt.Errorf("ocr: encode region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", nil, fmt.Errorf("ocr: set image: %w", err)
	}
	if err := client.SetLanguage(e.Languages...); err != nil {
		return "", nil, fmt.Errorf("ocr: set languages: %w", err)
	}
	if err := client.SetPageSegMode(e.PageSegMode); err != nil {
		return "", nil, fmt.Errorf("ocr: set page seg mode: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", nil, fmt.Errorf("ocr: recognize: %w", err)
	}

	var (
		words []Word
		texts []string
	)
	for _, b := range boxes {
		if b.Confidence <= 0 || strings.TrimSpace(b.Word) == "" {
			continue
		}
		words = append(words, Word{
			Text: b.Word,
			Box:  model.BBoxFromRect(b.Box),
		})
		texts = append(texts, b.Word)
	}

	text := FixCurrencyArtifacts(strings.Join(texts, " "))
	return strings.TrimSpace(text), words, nil
}
