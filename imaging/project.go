package imaging

import "image"

// Axis selects the orientation of a projection or line probe.
type Axis int

const (
	// Vertical means along the Y axis (vertical lines, column boundaries).
	Vertical Axis = iota
	// Horizontal means along the X axis (horizontal lines, row boundaries).
	Horizontal
)

// LinePositions projects a line mask onto the axis perpendicular to the
// lines and returns the sorted, de-duplicated coordinates where lines sit.
// Runs of adjacent occupied coordinates (a line several pixels thick)
// collapse to their center. For Vertical the positions are X coordinates of
// vertical lines; for Horizontal they are Y coordinates of horizontal lines.
func LinePositions(mask *image.Gray, axis Axis) []int {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	var occupied []bool
	if axis == Vertical {
		occupied = make([]bool, w)
		for y := 0; y < h; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
			for x, v := range row {
				if v > 0 {
					occupied[x] = true
				}
			}
		}
	} else {
		occupied = make([]bool, h)
		for y := 0; y < h; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
			for _, v := range row {
				if v > 0 {
					occupied[y] = true
					break
				}
			}
		}
	}

	var positions []int
	runStart := -1
	for i, occ := range occupied {
		if occ && runStart < 0 {
			runStart = i
		}
		if !occ && runStart >= 0 {
			positions = append(positions, (runStart+i-1)/2)
			runStart = -1
		}
	}
	if runStart >= 0 {
		positions = append(positions, (runStart+len(occupied)-1)/2)
	}
	return positions
}

// HasLine reports whether the strip contains a line of at least minLen
// pixels along the given axis. For Vertical it counts rows of the strip
// with at least one foreground pixel; a real vertical separator covers most
// of the strip's height.
func HasLine(strip *image.Gray, minLen int, axis Axis) bool {
	if minLen < 1 {
		minLen = 1
	}
	w, h := strip.Rect.Dx(), strip.Rect.Dy()
	count := 0
	if axis == Vertical {
		for y := 0; y < h; y++ {
			row := strip.Pix[y*strip.Stride : y*strip.Stride+w]
			for _, v := range row {
				if v > 0 {
					count++
					break
				}
			}
		}
	} else {
		cols := make([]bool, w)
		for y := 0; y < h; y++ {
			row := strip.Pix[y*strip.Stride : y*strip.Stride+w]
			for x, v := range row {
				if v > 0 {
					cols[x] = true
				}
			}
		}
		for _, c := range cols {
			if c {
				count++
			}
		}
	}
	return count >= minLen
}

// ExpandTextBlocks turns a cleaned grayscale page into a mask of text
// blocks: ink is binarized and dilated with a wide flat kernel so words of
// one paragraph fuse into a single region while separate paragraphs stay
// apart. kw and kh control how far the expansion bridges gaps.
func ExpandTextBlocks(gray *image.Gray, kw, kh int) *image.Gray {
	ink := BinarizeInv(gray, 128)
	return Dilate(ink, kw, kh, 1)
}
