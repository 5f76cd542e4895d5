package ocr

import "regexp"

var (
	// Tesseract misreads the digit 8 as $ in low-quality scans of amount
	// columns; both positions it happens in are unambiguous.
	dollarLeading = regexp.MustCompile(`(^|\s)\$(\d)`)
	dollarBetween = regexp.MustCompile(`(\d)\$(\d)`)
)

// FixCurrencyArtifacts repairs recurring recognition mistakes in amount
// text before it reaches financial-column analysis.
func FixCurrencyArtifacts(text string) string {
	text = dollarLeading.ReplaceAllString(text, "${1}8${2}")
	text = dollarBetween.ReplaceAllString(text, "${1}8${2}")
	return text
}
