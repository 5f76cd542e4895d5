package model

// ParagraphType classifies a paragraph by its position relative to the
// page's tables.
type ParagraphType string

const (
	ParagraphHeader ParagraphType = "header"
	ParagraphFooter ParagraphType = "footer"
	ParagraphNone   ParagraphType = "none"
)

// Paragraph is a free-text block outside any table.
type Paragraph struct {
	BBox    BBox          `json:"bbox"`
	Text    string        `json:"text"`
	Type    ParagraphType `json:"type"`
	PageNum int           `json:"page_num"`
	// Blobs are recognized word boxes in absolute page coordinates.
	Blobs []BBox `json:"blobs,omitempty"`
}

// Page holds everything extracted from one rasterized page.
type Page struct {
	BBox       BBox         `json:"bbox"`
	Tables     []*Table     `json:"tables"`
	Paragraphs []*Paragraph `json:"paragraphs"`
	NumPage    int          `json:"num_page"`
}

// NewPage creates an empty page of the given pixel dimensions.
func NewPage(width, height, num int) *Page {
	return &Page{
		BBox:    NewBBox(0, 0, width, height),
		NumPage: num,
	}
}

// Text concatenates the text of all paragraphs on the page, top to bottom.
func (p *Page) Text() string {
	var out string
	for _, para := range p.Paragraphs {
		if para.Text == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += para.Text
	}
	return out
}
