package tables

import (
	"image"
	"log/slog"
	"sort"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
)

// CandidateFinder locates rectangular table-candidate regions on the
// combined ruling-line mask and filters out line fragments that are not
// part of an actual grid.
type CandidateFinder struct {
	// MaxCandidates caps how many regions are kept per page, largest first.
	MaxCandidates int

	// MinArea discards candidate regions smaller than this many square
	// pixels. At 300 DPI scan resolution the default rejects stamps,
	// logos and stray frames.
	MinArea int

	// MinCrossings is the number of orthogonal-mask crossings a line
	// component must exceed to count as part of a grid.
	MinCrossings int

	log *slog.Logger
}

// NewCandidateFinder creates a finder with production defaults.
func NewCandidateFinder(log *slog.Logger) *CandidateFinder {
	if log == nil {
		log = slog.Default()
	}
	return &CandidateFinder{
		MaxCandidates: 5,
		MinArea:       30000,
		MinCrossings:  1,
		log:           log,
	}
}

// Find returns table-candidate bounding boxes from the two line masks,
// ordered top to bottom. Each mask is dilated once to bridge small scan
// gaps before the masks are combined.
func (f *CandidateFinder) Find(horizontal, vertical *image.Gray) []model.BBox {
	combined := imaging.Or(
		imaging.Dilate(horizontal, 3, 3, 1),
		imaging.Dilate(vertical, 3, 3, 1),
	)

	labeling := imaging.LabelComponents(combined)
	comps := labeling.Components
	sort.Slice(comps, func(i, j int) bool {
		return comps[i].Bounds.Dx()*comps[i].Bounds.Dy() > comps[j].Bounds.Dx()*comps[j].Bounds.Dy()
	})
	if len(comps) > f.MaxCandidates {
		comps = comps[:f.MaxCandidates]
	}

	var boxes []model.BBox
	for _, c := range comps {
		if c.Bounds.Dx()*c.Bounds.Dy() < f.MinArea {
			continue
		}
		// A grid frame has ink at all four corners of its bounding box; a
		// lone rule or an open angle of lines does not.
		if !labeling.TouchesAllCorners(c, 3) {
			continue
		}
		boxes = append(boxes, model.BBoxFromRect(c.Bounds))
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].Y1 < boxes[j].Y1 })
	f.log.Debug("table candidates located", "count", len(boxes))
	return boxes
}

// FilterLines restricts the two line masks to a candidate region and drops
// components that cannot belong to the grid: vertical fragments shorter
// than a threshold scaled to the region height, and lines of either
// orientation that cross the orthogonal mask in too few places. The
// surviving lines are re-thickened so they cover the full stroke width
// when later erased from the page image.
//
// The returned masks are region-local, with bounds starting at (0,0).
func (f *CandidateFinder) FilterLines(horizontal, vertical *image.Gray, roi model.BBox) (fh, fv *image.Gray) {
	hc := imaging.Crop(horizontal, roi.Rect())
	vc := imaging.Crop(vertical, roi.Rect())
	crossings := imaging.And(hc, vc)

	minVertical := roi.Height() / 100
	if minVertical < 10 {
		minVertical = 10
	}
	fv = f.filterSmallAndIsolated(vc, crossings, minVertical)
	fh = f.filterSmallAndIsolated(hc, crossings, 1)

	// Thickening happens only after component filtering: merged strokes
	// would otherwise fuse into one giant component and defeat the filter.
	fv = imaging.Dilate(fv, 3, 3, 2)
	fh = imaging.Dilate(fh, 3, 3, 2)
	return fh, fv
}

// filterSmallAndIsolated keeps only mask components whose pixel count is at
// least minLength and that cross the orthogonal-line mask in more than
// MinCrossings distinct places.
func (f *CandidateFinder) filterSmallAndIsolated(mask, crossings *image.Gray, minLength int) *image.Gray {
	labeling := imaging.LabelComponents(mask)
	out := image.NewGray(image.Rect(0, 0, labeling.Width, labeling.Height))
	for _, c := range labeling.Components {
		if c.Area < minLength {
			continue
		}
		if labeling.CountCrossings(c.Label, crossings) <= f.MinCrossings {
			continue
		}
		labeling.Paint(c.Label, out)
	}
	return out
}
