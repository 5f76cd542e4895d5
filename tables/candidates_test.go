package tables

import (
	"image"
	"testing"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
)

// drawFrame paints a rectangular frame into the two orientation masks.
func drawFrame(h, v *image.Gray, x0, y0, x1, y1 int) {
	drawHLine(h, y0, x0, x1)
	drawHLine(h, y1-1, x0, x1)
	drawVLine(v, x0, y0, y1)
	drawVLine(v, x1-1, y0, y1)
}

func TestCandidateFinderFindsFramesTopToBottom(t *testing.T) {
	h := newMask(200, 200)
	v := newMask(200, 200)
	drawFrame(h, v, 20, 110, 180, 190) // lower frame first in the masks
	drawFrame(h, v, 20, 10, 180, 90)

	finder := NewCandidateFinder(nil)
	finder.MinArea = 1000
	boxes := finder.Find(h, v)

	if len(boxes) != 2 {
		t.Fatalf("Find() returned %d candidates, want 2", len(boxes))
	}
	if boxes[0].Y1 > boxes[1].Y1 {
		t.Errorf("candidates not ordered top to bottom: %+v", boxes)
	}
}

func TestCandidateFinderRejectsOpenAngles(t *testing.T) {
	h := newMask(200, 200)
	v := newMask(200, 200)
	// Two rules meeting in one corner, never closing a frame.
	drawHLine(h, 150, 0, 100)
	drawVLine(v, 0, 100, 151)

	finder := NewCandidateFinder(nil)
	finder.MinArea = 1000
	if boxes := finder.Find(h, v); len(boxes) != 0 {
		t.Errorf("Find() returned %d candidates for an open angle, want 0", len(boxes))
	}
}

func TestCandidateFinderRejectsSmallRegions(t *testing.T) {
	h := newMask(200, 200)
	v := newMask(200, 200)
	drawFrame(h, v, 10, 10, 40, 40)

	finder := NewCandidateFinder(nil)
	finder.MinArea = 10000
	if boxes := finder.Find(h, v); len(boxes) != 0 {
		t.Errorf("Find() returned %d candidates below the area floor, want 0", len(boxes))
	}
}

func TestCandidateFinderCapsCandidates(t *testing.T) {
	h := newMask(300, 300)
	v := newMask(300, 300)
	drawFrame(h, v, 10, 10, 90, 90)
	drawFrame(h, v, 110, 110, 190, 190)
	drawFrame(h, v, 210, 210, 290, 290)

	finder := NewCandidateFinder(nil)
	finder.MinArea = 1000
	finder.MaxCandidates = 2
	if boxes := finder.Find(h, v); len(boxes) != 2 {
		t.Errorf("Find() returned %d candidates, want the cap of 2", len(boxes))
	}
}

func TestFilterLinesDropsSmallAndIsolated(t *testing.T) {
	h := newMask(100, 100)
	v := newMask(100, 100)
	// A 2x2 grid skeleton: every line crosses the orthogonal mask twice.
	drawHLine(h, 20, 0, 100)
	drawHLine(h, 80, 0, 100)
	drawVLine(v, 25, 0, 100)
	drawVLine(v, 75, 0, 100)
	// An isolated short rule and an undersized vertical fragment.
	drawHLine(h, 50, 0, 10)
	drawVLine(v, 90, 40, 45)

	finder := NewCandidateFinder(nil)
	fh, fv := finder.FilterLines(h, v, model.NewBBox(0, 0, 100, 100))

	if got := len(imaging.LabelComponents(fh).Components); got != 2 {
		t.Errorf("filtered horizontal mask has %d components, want 2", got)
	}
	if got := len(imaging.LabelComponents(fv).Components); got != 2 {
		t.Errorf("filtered vertical mask has %d components, want 2", got)
	}

	// Survivors are re-thickened to cover the full stroke width.
	if fv.Pix[50*fv.Stride+24] == 0 || fv.Pix[50*fv.Stride+26] == 0 {
		t.Error("surviving vertical rule was not re-thickened")
	}
}

func TestFilterLinesCropsToRegion(t *testing.T) {
	h := newMask(200, 200)
	v := newMask(200, 200)
	drawHLine(h, 20, 0, 100)
	drawHLine(h, 80, 0, 100)
	drawVLine(v, 25, 0, 100)
	drawVLine(v, 75, 0, 100)

	finder := NewCandidateFinder(nil)
	fh, fv := finder.FilterLines(h, v, model.NewBBox(0, 0, 100, 100))

	if fh.Rect.Dx() != 100 || fh.Rect.Dy() != 100 {
		t.Errorf("filtered horizontal mask is %dx%d, want 100x100", fh.Rect.Dx(), fh.Rect.Dy())
	}
	if fv.Rect.Min != image.Pt(0, 0) {
		t.Errorf("filtered vertical mask bounds start at %v, want (0,0)", fv.Rect.Min)
	}
}
