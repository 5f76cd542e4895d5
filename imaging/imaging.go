package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
)

// Grayscale converts any image to 8-bit grayscale with bounds at (0,0).
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == image.Pt(0, 0) {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

// Clone returns a deep copy of img normalized to bounds at (0,0).
func Clone(img *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	if img.Rect.Min == image.Pt(0, 0) && img.Stride == out.Stride {
		copy(out.Pix, img.Pix)
		return out
	}
	draw.Draw(out, out.Rect, img, img.Rect.Min, draw.Src)
	return out
}

// Crop copies the given region of img into a new image with bounds at (0,0).
// The region is clamped to the image bounds.
func Crop(img *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(img.Rect)
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Rect, img, r.Min, draw.Src)
	return out
}

// Fill paints the given region of img with the value v in place.
func Fill(img *image.Gray, r image.Rectangle, v uint8) {
	draw.Draw(img, r.Intersect(img.Rect), &image.Uniform{color.Gray{Y: v}}, image.Point{}, draw.Src)
}

// Otsu computes the Otsu threshold of a grayscale image.
func Otsu(img *image.Gray) uint8 {
	var hist [256]int
	b := img.Rect
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			hist[row[x]]++
		}
	}
	sum := 0.0
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}
	var sumB, wB float64
	bestVar, best := 0.0, 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return uint8(best)
}

// BinarizeInv produces a binary mask where pixels darker than or equal to
// the threshold become foreground (255). Ink on a scanned page is dark, so
// the resulting mask marks ink.
func BinarizeInv(img *image.Gray, threshold uint8) *image.Gray {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			if v <= threshold {
				dst[x] = 255
			}
		}
	}
	return out
}

// MedianBlur3 applies a 3x3 median filter with replicated borders.
func MedianBlur3(img *image.Gray) *image.Gray {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	var window [9]int
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				yy := clamp(y+dy, 0, h-1)
				for dx := -1; dx <= 1; dx++ {
					xx := clamp(x+dx, 0, w-1)
					window[n] = int(img.Pix[yy*img.Stride+xx])
					n++
				}
			}
			sort.Ints(window[:])
			out.Pix[y*out.Stride+x] = uint8(window[4])
		}
	}
	return out
}

// Preprocess cleans a grayscale page for layout analysis: a 3x3 median blur
// to remove scan grain followed by Otsu binarization. The result keeps the
// page convention (ink black on white background).
func Preprocess(gray *image.Gray) *image.Gray {
	blurred := MedianBlur3(gray)
	t := Otsu(blurred)
	w, h := blurred.Rect.Dx(), blurred.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := blurred.Pix[y*blurred.Stride : y*blurred.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			if v > t {
				dst[x] = 255
			}
		}
	}
	return out
}

// Or combines two same-sized masks; a pixel is foreground if it is
// foreground in either mask.
func Or(a, b *image.Gray) *image.Gray {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			if ra[x] > 0 || rb[x] > 0 {
				dst[x] = 255
			}
		}
	}
	return out
}

// And intersects two same-sized masks.
func And(a, b *image.Gray) *image.Gray {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			if ra[x] > 0 && rb[x] > 0 {
				dst[x] = 255
			}
		}
	}
	return out
}

// RemoveMask paints the pixels of img that are foreground in mask with the
// value v, in place. Used to erase detected ruling lines before recognition.
func RemoveMask(img *image.Gray, mask *image.Gray, v uint8) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if mw := mask.Rect.Dx(); mw < w {
		w = mw
	}
	if mh := mask.Rect.Dy(); mh < h {
		h = mh
	}
	for y := 0; y < h; y++ {
		m := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		dst := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := 0; x < w; x++ {
			if m[x] > 0 {
				dst[x] = v
			}
		}
	}
}
