package tables

import (
	"image"

	"github.com/tsawler/scanlayout/imaging"
)

// LineDetector extracts ruling-line masks from a binarized page image via
// orientation-selective morphological opening. The kernel length is the
// larger page dimension divided by the per-orientation divisor; a larger
// divisor yields a shorter kernel and accepts shorter line fragments.
type LineDetector struct {
	// HorizontalDivisor scales the horizontal opening kernel.
	HorizontalDivisor int

	// VerticalDivisor scales the vertical opening kernel. Vertical rules in
	// scanned ledgers are often short (one row tall), so the default kernel
	// is much shorter than the horizontal one.
	VerticalDivisor int
}

// NewLineDetector creates a detector with the default kernel divisors.
func NewLineDetector() *LineDetector {
	return &LineDetector{
		HorizontalDivisor: 20,
		VerticalDivisor:   150,
	}
}

// Detect returns the horizontal and vertical ruling-line masks of a binary
// ink mask (foreground = ink). Both masks have the same dimensions as the
// input. Character strokes are shorter than the opening kernels and vanish;
// continuous rules survive.
func (d *LineDetector) Detect(ink *image.Gray) (horizontal, vertical *image.Gray) {
	longest := ink.Rect.Dx()
	if ink.Rect.Dy() > longest {
		longest = ink.Rect.Dy()
	}
	hLen := longest / d.HorizontalDivisor
	if hLen < 2 {
		hLen = 2
	}
	vLen := longest / d.VerticalDivisor
	if vLen < 2 {
		vLen = 2
	}
	horizontal = imaging.Open(ink, hLen, 1)
	vertical = imaging.Open(ink, 1, vLen)
	return horizontal, vertical
}
