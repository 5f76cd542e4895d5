package imaging

import "image"

// Component is one 8-connected foreground region of a binary mask.
type Component struct {
	Label  int
	Area   int // foreground pixel count
	Bounds image.Rectangle
}

// Labeling is the result of connected-component analysis: a dense label
// buffer (0 = background) plus per-component stats. The buffer is scoped to
// one mask; it is not meant to outlive the analysis that produced it.
type Labeling struct {
	Width, Height int
	Labels        []int32 // row-major, Width*Height
	Components    []Component
}

// LabelComponents performs 8-connected component labeling over a binary
// mask and returns the label buffer with per-component area and bounds.
func LabelComponents(mask *image.Gray) *Labeling {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	l := &Labeling{
		Width:  w,
		Height: h,
		Labels: make([]int32, w*h),
	}
	next := int32(0)
	var queue []int
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] == 0 || l.Labels[y*w+x] != 0 {
				continue
			}
			next++
			comp := Component{
				Label:  int(next),
				Bounds: image.Rect(x, y, x+1, y+1),
			}
			queue = queue[:0]
			queue = append(queue, y*w+x)
			l.Labels[y*w+x] = next
			for len(queue) > 0 {
				idx := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				cy, cx := idx/w, idx%w
				comp.Area++
				if cx < comp.Bounds.Min.X {
					comp.Bounds.Min.X = cx
				}
				if cx+1 > comp.Bounds.Max.X {
					comp.Bounds.Max.X = cx + 1
				}
				if cy < comp.Bounds.Min.Y {
					comp.Bounds.Min.Y = cy
				}
				if cy+1 > comp.Bounds.Max.Y {
					comp.Bounds.Max.Y = cy + 1
				}
				for dy := -1; dy <= 1; dy++ {
					ny := cy + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						nx := cx + dx
						if nx < 0 || nx >= w || (dx == 0 && dy == 0) {
							continue
						}
						nidx := ny*w + nx
						if mask.Pix[ny*mask.Stride+nx] > 0 && l.Labels[nidx] == 0 {
							l.Labels[nidx] = next
							queue = append(queue, nidx)
						}
					}
				}
			}
			l.Components = append(l.Components, comp)
		}
	}
	return l
}

// Paint copies all pixels of the component with the given label into dst as
// foreground. dst must have the same dimensions as the labeled mask.
func (l *Labeling) Paint(label int, dst *image.Gray) {
	for y := 0; y < l.Height; y++ {
		row := l.Labels[y*l.Width : (y+1)*l.Width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+l.Width]
		for x, v := range row {
			if int(v) == label {
				out[x] = 255
			}
		}
	}
}

// CountCrossings counts the connected blobs of the region where the given
// component overlaps the other mask. For a ruling line this is the number
// of distinct places it crosses the orthogonal line mask.
func (l *Labeling) CountCrossings(label int, other *image.Gray) int {
	w, h := l.Width, l.Height
	visited := make([]bool, w*h)
	inRegion := func(x, y int) bool {
		return int(l.Labels[y*w+x]) == label && other.Pix[y*other.Stride+x] > 0
	}
	count := 0
	var queue []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !inRegion(x, y) {
				continue
			}
			count++
			queue = queue[:0]
			queue = append(queue, y*w+x)
			visited[y*w+x] = true
			for len(queue) > 0 {
				idx := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				cy, cx := idx/w, idx%w
				for dy := -1; dy <= 1; dy++ {
					ny := cy + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						nx := cx + dx
						if nx < 0 || nx >= w || (dx == 0 && dy == 0) {
							continue
						}
						nidx := ny*w + nx
						if !visited[nidx] && inRegion(nx, ny) {
							visited[nidx] = true
							queue = append(queue, nidx)
						}
					}
				}
			}
		}
	}
	return count
}

// TouchesAllCorners reports whether the component has pixels within band
// of every corner of its own bounding box. A rectangular table frame does;
// a lone diagonal stroke or an open angle of lines does not.
func (l *Labeling) TouchesAllCorners(c Component, band int) bool {
	b := c.Bounds
	corner := func(x0, y0, x1, y1 int) bool {
		for y := y0; y < y1; y++ {
			row := l.Labels[y*l.Width : (y+1)*l.Width]
			for x := x0; x < x1; x++ {
				if int(row[x]) == c.Label {
					return true
				}
			}
		}
		return false
	}
	left := min(b.Min.X+band, b.Max.X)
	right := max(b.Max.X-band, b.Min.X)
	top := min(b.Min.Y+band, b.Max.Y)
	bottom := max(b.Max.Y-band, b.Min.Y)
	return corner(b.Min.X, b.Min.Y, left, top) &&
		corner(right, b.Min.Y, b.Max.X, top) &&
		corner(b.Min.X, bottom, left, b.Max.Y) &&
		corner(right, bottom, b.Max.X, b.Max.Y)
}
