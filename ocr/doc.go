// Package ocr defines the text-recognition capability consumed by the
// layout engine and provides a Tesseract-backed implementation.
//
// The Tesseract engine wraps gosseract and is compiled in only with the
// "ocr" build tag:
//
//	go build -tags ocr
//
// It requires the Tesseract libraries to be installed (apt-get install
// tesseract-ocr libtesseract-dev on Debian/Ubuntu, brew install tesseract
// on macOS). Without the tag a stub engine is compiled that returns
// ErrNotEnabled, so the rest of the module builds and tests anywhere.
package ocr
