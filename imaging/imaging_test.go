package imaging

import (
	"image"
	"testing"
)

// maskFrom builds a binary mask from rows of '.' (background) and 'X'
// (foreground).
func maskFrom(t *testing.T, rows ...string) *image.Gray {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has width %d, want %d", y, len(row), w)
		}
		for x, c := range row {
			if c == 'X' {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// maskEqual compares a mask against the same string form.
func maskEqual(t *testing.T, got *image.Gray, rows ...string) {
	t.Helper()
	w, h := got.Rect.Dx(), got.Rect.Dy()
	if h != len(rows) || w != len(rows[0]) {
		t.Fatalf("mask is %dx%d, want %dx%d", w, h, len(rows[0]), len(rows))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := rows[y][x] == 'X'
			if (got.Pix[y*got.Stride+x] > 0) != want {
				t.Errorf("pixel (%d,%d) = %d, want foreground=%v", x, y, got.Pix[y*got.Stride+x], want)
			}
		}
	}
}

func TestGrayscaleNormalizesBounds(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 15, 25))
	got := Grayscale(src)
	if got.Rect.Min != image.Pt(0, 0) || got.Rect.Dx() != 10 || got.Rect.Dy() != 20 {
		t.Errorf("Grayscale() bounds = %v, want (0,0)-(10,20)", got.Rect)
	}
}

func TestCropCopiesRegion(t *testing.T) {
	src := maskFrom(t,
		"....",
		".XX.",
		".XX.",
		"....",
	)
	got := Crop(src, image.Rect(1, 1, 3, 3))
	maskEqual(t, got,
		"XX",
		"XX",
	)

	// Writing to the crop must not touch the source.
	got.Pix[0] = 0
	if src.Pix[1*src.Stride+1] != 255 {
		t.Error("Crop() shares pixels with the source")
	}
}

func TestCropClampsToBounds(t *testing.T) {
	src := maskFrom(t, "XX", "XX")
	got := Crop(src, image.Rect(1, 1, 10, 10))
	if got.Rect.Dx() != 1 || got.Rect.Dy() != 1 {
		t.Errorf("Crop() out-of-bounds region is %dx%d, want 1x1", got.Rect.Dx(), got.Rect.Dy())
	}
}

func TestFill(t *testing.T) {
	img := maskFrom(t,
		"XXX",
		"XXX",
		"XXX",
	)
	Fill(img, image.Rect(1, 1, 3, 2), 0)
	maskEqual(t, img,
		"XXX",
		"X..",
		"XXX",
	)
}

func TestOtsuSeparatesBimodalImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 30
		} else {
			img.Pix[i] = 220
		}
	}
	threshold := Otsu(img)
	if threshold < 30 || threshold >= 220 {
		t.Errorf("Otsu() = %d, want a value between the two modes", threshold)
	}
}

func TestBinarizeInvMarksInk(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix[0] = 0   // ink
	img.Pix[1] = 128 // at threshold, still ink
	img.Pix[2] = 200 // paper
	got := BinarizeInv(img, 128)
	maskEqual(t, got, "XX.")
}

func TestPreprocessKeepsInkPolarity(t *testing.T) {
	// Left half dark ink, right half paper.
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.Pix[y*img.Stride+x] = 20
			} else {
				img.Pix[y*img.Stride+x] = 230
			}
		}
	}
	got := Preprocess(img)
	if got.Pix[0] != 0 {
		t.Errorf("ink pixel = %d, want 0", got.Pix[0])
	}
	if got.Pix[7] != 255 {
		t.Errorf("paper pixel = %d, want 255", got.Pix[7])
	}
}

func TestOrAnd(t *testing.T) {
	a := maskFrom(t, "XX..")
	b := maskFrom(t, ".XX.")

	maskEqual(t, Or(a, b), "XXX.")
	maskEqual(t, And(a, b), ".X..")
}

func TestRemoveMaskErasesInPlace(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	mask := maskFrom(t, ".XX.")
	RemoveMask(img, mask, 255)
	want := []uint8{0, 255, 255, 0}
	for i, v := range want {
		if img.Pix[i] != v {
			t.Errorf("pixel %d = %d, want %d", i, img.Pix[i], v)
		}
	}
}

func TestRemoveMaskOnSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 6))
	region := img.SubImage(image.Rect(2, 2, 5, 5)).(*image.Gray)
	mask := maskFrom(t,
		"XXX",
		"XXX",
		"XXX",
	)
	RemoveMask(region, mask, 255)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inRegion := x >= 2 && x < 5 && y >= 2 && y < 5
			v := img.Pix[y*img.Stride+x]
			if inRegion && v != 255 {
				t.Errorf("region pixel (%d,%d) = %d, want 255", x, y, v)
			}
			if !inRegion && v != 0 {
				t.Errorf("outside pixel (%d,%d) = %d, want 0", x, y, v)
			}
		}
	}
}

func TestMedianBlurRemovesSaltNoise(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Pix[2*img.Stride+2] = 0 // lone speck
	got := MedianBlur3(img)
	if got.Pix[2*got.Stride+2] != 200 {
		t.Errorf("speck survived the median filter: %d", got.Pix[2*got.Stride+2])
	}
}
