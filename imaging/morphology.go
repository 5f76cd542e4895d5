package imaging

import "image"

// Dilate grows foreground regions of a binary mask with a kw x kh
// rectangular kernel, repeated iterations times. The kernel anchor is at
// its center; pixels outside the image count as background.
func Dilate(mask *image.Gray, kw, kh, iterations int) *image.Gray {
	out := mask
	for i := 0; i < iterations; i++ {
		out = dilateOnce(out, kw, kh)
	}
	if out == mask {
		out = Clone(mask)
	}
	return out
}

// Erode shrinks foreground regions with a kw x kh rectangular kernel.
// Pixels outside the image count as foreground, so lines touching the
// border are not eaten from the outside.
func Erode(mask *image.Gray, kw, kh, iterations int) *image.Gray {
	out := mask
	for i := 0; i < iterations; i++ {
		out = erodeOnce(out, kw, kh)
	}
	if out == mask {
		out = Clone(mask)
	}
	return out
}

// Open applies morphological opening (erosion followed by dilation) with a
// kw x kh rectangular kernel. A thin run of foreground survives only if it
// is at least as long as the kernel along the kernel's long axis, which is
// what makes opening with a long thin kernel a ruling-line detector.
func Open(mask *image.Gray, kw, kh int) *image.Gray {
	return dilateOnce(erodeOnce(mask, kw, kh), kw, kh)
}

// dilateOnce is separable: a horizontal window-max pass then a vertical one.
func dilateOnce(mask *image.Gray, kw, kh int) *image.Gray {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	if kw > 1 {
		left, right := kw/2, kw-1-kw/2
		for y := 0; y < h; y++ {
			src := mask.Pix[y*mask.Stride : y*mask.Stride+w]
			dst := tmp.Pix[y*tmp.Stride : y*tmp.Stride+w]
			windowAny(src, dst, left, right)
		}
	} else {
		for y := 0; y < h; y++ {
			copy(tmp.Pix[y*tmp.Stride:y*tmp.Stride+w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
		}
	}
	if kh <= 1 {
		return tmp
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	top, bottom := kh/2, kh-1-kh/2
	col := make([]uint8, h)
	res := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		windowAny(col, res, top, bottom)
		for y := 0; y < h; y++ {
			out.Pix[y*out.Stride+x] = res[y]
		}
	}
	return out
}

// erodeOnce is separable: a horizontal window-all pass then a vertical one.
func erodeOnce(mask *image.Gray, kw, kh int) *image.Gray {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	if kw > 1 {
		left, right := kw/2, kw-1-kw/2
		for y := 0; y < h; y++ {
			src := mask.Pix[y*mask.Stride : y*mask.Stride+w]
			dst := tmp.Pix[y*tmp.Stride : y*tmp.Stride+w]
			windowAll(src, dst, left, right)
		}
	} else {
		for y := 0; y < h; y++ {
			copy(tmp.Pix[y*tmp.Stride:y*tmp.Stride+w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
		}
	}
	if kh <= 1 {
		return tmp
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	top, bottom := kh/2, kh-1-kh/2
	col := make([]uint8, h)
	res := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		windowAll(col, res, top, bottom)
		for y := 0; y < h; y++ {
			out.Pix[y*out.Stride+x] = res[y]
		}
	}
	return out
}

// windowAny sets dst[i]=255 when any pixel of src in [i-left, i+right]
// (clamped to the line) is foreground. Uses a prefix-sum of foreground
// counts so the cost is independent of kernel length.
func windowAny(src, dst []uint8, left, right int) {
	n := len(src)
	prefix := make([]int, n+1)
	for i, v := range src {
		prefix[i+1] = prefix[i]
		if v > 0 {
			prefix[i+1]++
		}
	}
	for i := 0; i < n; i++ {
		lo := i - left
		if lo < 0 {
			lo = 0
		}
		hi := i + right + 1
		if hi > n {
			hi = n
		}
		if prefix[hi]-prefix[lo] > 0 {
			dst[i] = 255
		} else {
			dst[i] = 0
		}
	}
}

// windowAll sets dst[i]=255 when every in-bounds pixel of src in
// [i-left, i+right] is foreground.
func windowAll(src, dst []uint8, left, right int) {
	n := len(src)
	prefix := make([]int, n+1)
	for i, v := range src {
		prefix[i+1] = prefix[i]
		if v > 0 {
			prefix[i+1]++
		}
	}
	for i := 0; i < n; i++ {
		lo := i - left
		if lo < 0 {
			lo = 0
		}
		hi := i + right + 1
		if hi > n {
			hi = n
		}
		if prefix[hi]-prefix[lo] == hi-lo {
			dst[i] = 255
		} else {
			dst[i] = 0
		}
	}
}
