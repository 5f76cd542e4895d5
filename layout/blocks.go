package layout

import (
	"image"
	"sort"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
)

// BlockDetector locates paragraph-sized text regions on a cleaned page.
// Word blobs are dilated with a wide flat kernel so the words of one
// paragraph fuse into a single connected region while distinct paragraphs
// stay apart.
type BlockDetector struct {
	// MinWidth and MinHeight reject specks and stray marks.
	MinWidth  int
	MinHeight int
	// Padding grows each accepted block outward, clamped to the page.
	Padding int
	// Margin is the clearance required between a block and the nearest
	// table edge for header/footer classification.
	Margin int
	// KernelW and KernelH are the dilation kernel dimensions.
	KernelW int
	KernelH int
}

// NewBlockDetector returns a detector with defaults tuned for 300 DPI
// financial document scans.
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		MinWidth:  20,
		MinHeight: 20,
		Padding:   5,
		Margin:    2,
		KernelW:   70,
		KernelH:   30,
	}
}

// Detect returns the paragraph regions of the page outside the given
// masked boxes, ordered top to bottom. The returned paragraphs carry no
// text and no classification; recognition and Classify happen downstream.
func (d *BlockDetector) Detect(page *image.Gray, masked []model.BBox) []*model.Paragraph {
	work := imaging.Clone(page)
	for _, t := range masked {
		imaging.Fill(work, t.Rect(), 255)
	}

	mask := imaging.ExpandTextBlocks(work, d.KernelW, d.KernelH)
	labeling := imaging.LabelComponents(mask)

	pageBounds := image.Rect(0, 0, page.Rect.Dx(), page.Rect.Dy())
	var boxes []model.BBox
	for _, c := range labeling.Components {
		box := model.BBoxFromRect(c.Bounds)
		if box.Width() < d.MinWidth || box.Height() < d.MinHeight {
			continue
		}
		boxes = append(boxes, box.Pad(d.Padding, pageBounds))
	}
	boxes = dropNested(boxes)

	var paragraphs []*model.Paragraph
	for _, box := range boxes {
		paragraphs = append(paragraphs, &model.Paragraph{
			BBox: box,
			Type: model.ParagraphNone,
		})
	}
	sort.Slice(paragraphs, func(i, j int) bool {
		return paragraphs[i].BBox.Y1 < paragraphs[j].BBox.Y1
	})
	return paragraphs
}

// Classify marks a block as header when it sits entirely above the first
// table, footer when entirely below the last, otherwise none. Pages with no
// tables have neither headers nor footers.
func (d *BlockDetector) Classify(box model.BBox, tables []model.BBox) model.ParagraphType {
	if len(tables) == 0 {
		return model.ParagraphNone
	}
	first, last := tables[0], tables[0]
	for _, t := range tables[1:] {
		if t.Y1 < first.Y1 {
			first = t
		}
		if t.Y2 > last.Y2 {
			last = t
		}
	}
	if box.Y2 <= first.Y1-d.Margin {
		return model.ParagraphHeader
	}
	if box.Y1 >= last.Y2+d.Margin {
		return model.ParagraphFooter
	}
	return model.ParagraphNone
}

// dropNested removes boxes fully contained in another box. The padding step
// can push a small block inside its larger neighbor; only the outer one
// survives.
func dropNested(boxes []model.BBox) []model.BBox {
	var out []model.BBox
	for i, box := range boxes {
		nested := false
		for j, other := range boxes {
			if i == j {
				continue
			}
			if other.Contains(box) && !box.Contains(other) {
				nested = true
				break
			}
			// Identical boxes: keep the first occurrence only.
			if other.Contains(box) && box.Contains(other) && j < i {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, box)
		}
	}
	return out
}
