package ocr

import (
	"image"

	"github.com/tsawler/scanlayout/model"
)

// Word is one recognized word and its bounding box, relative to the image
// region the engine was given.
type Word struct {
	Text string
	Box  model.BBox
}

// Engine recognizes text in a grayscale image region. Implementations must
// be safe for concurrent use: the extractor fans recognition out over a
// worker pool with one call per table cell and paragraph.
type Engine interface {
	// Recognize returns the recognized text of the region and the
	// region-relative word boxes it is composed of.
	Recognize(region *image.Gray) (string, []Word, error)
}
