package model

// Document is an ordered collection of extracted pages plus the source
// bytes they were rasterized from.
type Document struct {
	Source []byte  `json:"-"`
	Pages  []*Page `json:"pages"`
}

// NewDocument creates a document for the given source bytes.
func NewDocument(source []byte) *Document {
	return &Document{Source: source}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(p *Page) {
	d.Pages = append(d.Pages, p)
}

// PageCount returns the number of extracted pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// AllParagraphText joins the text of every paragraph across all pages,
// in page order.
func (d *Document) AllParagraphText() string {
	var out string
	for _, page := range d.Pages {
		for _, para := range page.Paragraphs {
			if para.Text == "" {
				continue
			}
			if out != "" {
				out += "\n"
			}
			out += para.Text
		}
	}
	return out
}

// AllTables returns every table across all pages, in page order.
func (d *Document) AllTables() []*Table {
	var tables []*Table
	for _, page := range d.Pages {
		tables = append(tables, page.Tables...)
	}
	return tables
}
