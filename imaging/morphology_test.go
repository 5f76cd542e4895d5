package imaging

import (
	"image"
	"testing"
)

func TestDilateGrowsSinglePixel(t *testing.T) {
	mask := maskFrom(t,
		".....",
		".....",
		"..X..",
		".....",
		".....",
	)
	got := Dilate(mask, 3, 3, 1)
	maskEqual(t, got,
		".....",
		".XXX.",
		".XXX.",
		".XXX.",
		".....",
	)
}

func TestDilateIterations(t *testing.T) {
	mask := maskFrom(t,
		".......",
		".......",
		".......",
		"...X...",
		".......",
		".......",
		".......",
	)
	got := Dilate(mask, 3, 3, 2)
	maskEqual(t, got,
		".......",
		".XXXXX.",
		".XXXXX.",
		".XXXXX.",
		".XXXXX.",
		".XXXXX.",
		".......",
	)
}

func TestErodeRemovesThinFeatures(t *testing.T) {
	mask := maskFrom(t,
		".....",
		".XXX.",
		".XXX.",
		".XXX.",
		"...X.",
	)
	got := Erode(mask, 3, 3, 1)
	maskEqual(t, got,
		".....",
		".....",
		"..X..",
		".....",
		".....",
	)
}

func TestOpenKeepsLongLinesOnly(t *testing.T) {
	// A full-width horizontal rule, a short stroke and a vertical rule.
	mask := maskFrom(t,
		"..........",
		"XXXXXXXXXX",
		"..........",
		"..XXX...X.",
		"........X.",
		"........X.",
		"........X.",
	)
	got := Open(mask, 8, 1)
	maskEqual(t, got,
		"..........",
		"XXXXXXXXXX",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	)
}

func TestOpenVerticalKernel(t *testing.T) {
	mask := maskFrom(t,
		"X...X",
		"X....",
		"X...X",
		"X....",
		"X...X",
	)
	got := Open(mask, 1, 5)
	maskEqual(t, got,
		"X....",
		"X....",
		"X....",
		"X....",
		"X....",
	)
}

func TestErodeBorderCountsAsForeground(t *testing.T) {
	// A line running into the border must not be eaten from outside.
	mask := maskFrom(t,
		".....",
		"XXXXX",
		".....",
	)
	got := Erode(mask, 3, 1, 1)
	maskEqual(t, got,
		".....",
		"XXXXX",
		".....",
	)
}

func TestDilateDoesNotAliasInput(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 3, 3))
	got := Dilate(mask, 1, 1, 0)
	got.Pix[0] = 255
	if mask.Pix[0] != 0 {
		t.Error("Dilate() with zero iterations returned the input mask")
	}
}
