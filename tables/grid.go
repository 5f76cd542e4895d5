package tables

import (
	"errors"
	"fmt"
	"image"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
)

// ErrNoGrid is returned when a candidate region does not contain enough
// line boundaries on both axes to form a table. Callers demote such
// regions to paragraph candidates instead of failing the page.
var ErrNoGrid = errors.New("tables: region has no usable grid")

// SpanMode selects which span directions the grid builder may merge when a
// separating rule is missing.
type SpanMode int

const (
	// SpanNone emits only atomic cells.
	SpanNone SpanMode = iota
	// SpanColumns merges cells horizontally across missing vertical rules.
	SpanColumns
	// SpanRows merges cells vertically across missing horizontal rules.
	SpanRows
	// SpanBoth merges in both directions.
	SpanBoth
)

// ParseSpanMode converts a configuration string to a SpanMode.
func ParseSpanMode(s string) (SpanMode, error) {
	switch s {
	case "none":
		return SpanNone, nil
	case "", "columns":
		return SpanColumns, nil
	case "rows":
		return SpanRows, nil
	case "both":
		return SpanBoth, nil
	}
	return SpanNone, fmt.Errorf("tables: unknown span mode %q", s)
}

// GridBuilder reconstructs a cell grid from the filtered line masks of one
// candidate region.
//
// Row merging is off by default: tables in scanned ledgers frequently omit
// a horizontal rule between stacked amounts, and treating that as a row
// span would glue distinct records together. See SpanMode.
type GridBuilder struct {
	// Span controls which directions may merge across missing rules.
	Span SpanMode

	// MinRowHeight is the minimum space below the last detected horizontal
	// rule for the region bottom to count as a synthetic final boundary.
	MinRowHeight int

	// LineFraction is the minimum fraction of the probed strip a rule must
	// cover to count as a real separator.
	LineFraction float64

	// ProbeThickness is the half-width in pixels of the strip probed
	// around each candidate boundary.
	ProbeThickness int
}

// NewGridBuilder creates a builder with production defaults: column spans
// only, 10px minimum row height, 20% separator coverage.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{
		Span:           SpanColumns,
		MinRowHeight:   10,
		LineFraction:   0.2,
		ProbeThickness: 3,
	}
}

// Build returns the cells tiling one candidate region. vertical and
// horizontal are the region-local filtered line masks; origin translates
// the emitted cell boxes into absolute page coordinates.
//
// Emitted cells partition the atomic grid: every (row, col) unit is covered
// by exactly one cell, and colspan/rowspan are always at least 1.
func (g *GridBuilder) Build(origin model.BBox, vertical, horizontal *image.Gray) ([]*model.Cell, error) {
	xs := imaging.LinePositions(vertical, imaging.Vertical)
	ys := imaging.LinePositions(horizontal, imaging.Horizontal)

	if len(xs) < 2 {
		return nil, ErrNoGrid
	}

	// Tables often run to the region bottom without a closing rule. If the
	// last detected boundary leaves room for another row, treat the region
	// bottom as a synthetic boundary.
	regionHeight := horizontal.Rect.Dy()
	if len(ys) > 0 && ys[len(ys)-1] < regionHeight-g.MinRowHeight {
		ys = append(ys, regionHeight)
	}
	if len(ys) < 2 {
		return nil, ErrNoGrid
	}

	nRows, nCols := len(ys)-1, len(xs)-1
	used := make([][]bool, nRows)
	for i := range used {
		used[i] = make([]bool, nCols)
	}

	var cells []*model.Cell
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			if used[r][c] {
				continue
			}
			x0, y0 := xs[c], ys[r]
			x1, y1 := xs[c+1], ys[r+1]

			colSpan := 1
			if g.Span == SpanColumns || g.Span == SpanBoth {
				for next := c + 1; next < nCols; next++ {
					if g.separatorPresent(vertical, xs[next], y0, y1, imaging.Vertical) {
						break
					}
					x1 = xs[next+1]
					colSpan++
				}
			}

			rowSpan := 1
			if g.Span == SpanRows || g.Span == SpanBoth {
				for next := r + 1; next < nRows; next++ {
					// Probe across the full colspan-extended width.
					if g.separatorPresent(horizontal, ys[next], x0, x1, imaging.Horizontal) {
						break
					}
					y1 = ys[next+1]
					rowSpan++
				}
			}

			for rr := r; rr < r+rowSpan && rr < nRows; rr++ {
				for cc := c; cc < c+colSpan && cc < nCols; cc++ {
					used[rr][cc] = true
				}
			}

			cells = append(cells, &model.Cell{
				BBox:    model.NewBBox(x0, y0, x1, y1).Translate(origin.X1, origin.Y1),
				Row:     r,
				Col:     c,
				ColSpan: colSpan,
				RowSpan: rowSpan,
			})
		}
	}
	return cells, nil
}

// separatorPresent probes a thin strip centered on a candidate boundary and
// reports whether a rule covering at least LineFraction of the strip's long
// side exists there. pos is the boundary coordinate on the probe axis; lo
// and hi bound the strip along the perpendicular axis.
func (g *GridBuilder) separatorPresent(mask *image.Gray, pos, lo, hi int, axis imaging.Axis) bool {
	if hi <= lo {
		return true // degenerate strip, stop growing
	}
	var strip image.Rectangle
	if axis == imaging.Vertical {
		x0 := max(0, pos-g.ProbeThickness)
		x1 := min(mask.Rect.Dx(), pos+g.ProbeThickness+1)
		if x1 <= x0 {
			return true
		}
		strip = image.Rect(x0, lo, x1, hi)
	} else {
		y0 := max(0, pos-g.ProbeThickness)
		y1 := min(mask.Rect.Dy(), pos+g.ProbeThickness+1)
		if y1 <= y0 {
			return true
		}
		strip = image.Rect(lo, y0, hi, y1)
	}
	minLen := int(float64(hi-lo) * g.LineFraction)
	return imaging.HasLine(imaging.Crop(mask, strip), minLen, axis)
}
