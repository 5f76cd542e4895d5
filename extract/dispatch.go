package extract

import (
	"image"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
	"github.com/tsawler/scanlayout/ocr"
)

// recognizeAll fans text recognition out over a bounded worker pool, one
// task per table cell and per paragraph, and blocks until every task is
// done. Each failure is logged and leaves its target empty; one bad region
// never poisons the rest of the page.
//
// This is the only place region-relative word boxes are translated into
// absolute page coordinates.
func (e *Extractor) recognizeAll(page *image.Gray, pageTables []*model.Table, paragraphs []*model.Paragraph) {
	var g errgroup.Group
	g.SetLimit(e.workers)

	for _, t := range pageTables {
		for _, cell := range t.Cells {
			g.Go(func() error {
				text, blobs := e.recognizeRegion(page, cell.BBox)
				cell.Text = text
				cell.Blobs = blobs
				return nil
			})
		}
	}
	for _, p := range paragraphs {
		g.Go(func() error {
			text, blobs := e.recognizeRegion(page, p.BBox)
			p.Text = text
			p.Blobs = blobs
			return nil
		})
	}

	// Tasks report failures by logging, never by error, so Wait only joins.
	_ = g.Wait()
}

// recognizeRegion crops one region from the page, recognizes it and
// returns the text with word boxes translated to page coordinates.
func (e *Extractor) recognizeRegion(page *image.Gray, box model.BBox) (string, []model.BBox) {
	region := imaging.Crop(page, box.Rect())
	if region.Rect.Empty() {
		return "", nil
	}
	text, words, err := e.engine.Recognize(region)
	if err != nil {
		e.log.Error("recognition failed", "bbox", box, "error", err)
		return "", nil
	}
	return strings.TrimSpace(text), translateWords(words, box)
}

// translateWords shifts region-relative word boxes by the region's page
// origin.
func translateWords(words []ocr.Word, origin model.BBox) []model.BBox {
	if len(words) == 0 {
		return nil
	}
	blobs := make([]model.BBox, 0, len(words))
	for _, w := range words {
		blobs = append(blobs, w.Box.Translate(origin.X1, origin.Y1))
	}
	return blobs
}
