package model

import "image"

// BBox is an axis-aligned rectangle in page pixel coordinates.
// (X1,Y1) is the top-left corner, (X2,Y2) the bottom-right, exclusive.
// BBox values are immutable; methods that change geometry return a new box.
type BBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewBBox creates a bounding box from two corner coordinates.
func NewBBox(x1, y1, x2, y2 int) BBox {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// BBoxFromRect converts an image.Rectangle to a BBox.
func BBoxFromRect(r image.Rectangle) BBox {
	return BBox{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Rect converts the box to an image.Rectangle.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Width returns the box width in pixels.
func (b BBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b BBox) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the box area in square pixels.
func (b BBox) Area() int {
	return b.Width() * b.Height()
}

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() int {
	return (b.X1 + b.X2) / 2
}

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() int {
	return (b.Y1 + b.Y2) / 2
}

// IsEmpty returns true if the box has no area.
func (b BBox) IsEmpty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// Contains reports whether other lies entirely inside b.
func (b BBox) Contains(other BBox) bool {
	return other.X1 >= b.X1 && other.Y1 >= b.Y1 &&
		other.X2 <= b.X2 && other.Y2 <= b.Y2
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return b.X1 < other.X2 && other.X1 < b.X2 &&
		b.Y1 < other.Y2 && other.Y1 < b.Y2
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: min(b.X1, other.X1),
		Y1: min(b.Y1, other.Y1),
		X2: max(b.X2, other.X2),
		Y2: max(b.Y2, other.Y2),
	}
}

// Pad grows the box by margin on every side, clamped to the given bounds.
func (b BBox) Pad(margin int, bounds image.Rectangle) BBox {
	return BBox{
		X1: max(bounds.Min.X, b.X1-margin),
		Y1: max(bounds.Min.Y, b.Y1-margin),
		X2: min(bounds.Max.X, b.X2+margin),
		Y2: min(bounds.Max.Y, b.Y2+margin),
	}
}

// Translate returns the box shifted by (dx, dy).
func (b BBox) Translate(dx, dy int) BBox {
	return BBox{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}
