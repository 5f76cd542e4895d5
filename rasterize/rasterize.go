package rasterize

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/scanlayout/imaging"
)

// Source yields the pages of an input document as grayscale images.
type Source interface {
	PageCount() int
	// Render rasterizes the page at index (0-based) at the given DPI.
	Render(index, dpi int) (*image.Gray, error)
	Close() error
}

// PDFSource renders PDF pages through MuPDF.
type PDFSource struct {
	doc *fitz.Document
}

// NewPDF opens a PDF file as a page source.
func NewPDF(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("rasterize: open %s: %w", path, err)
	}
	return &PDFSource{doc: doc}, nil
}

// NewPDFBytes opens an in-memory PDF as a page source.
func NewPDFBytes(data []byte) (*PDFSource, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("rasterize: open pdf bytes: %w", err)
	}
	return &PDFSource{doc: doc}, nil
}

func (s *PDFSource) PageCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) Render(index, dpi int) (*image.Gray, error) {
	img, err := s.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rasterize: render page %d: %w", index, err)
	}
	return imaging.Grayscale(img), nil
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}

// ScaleToWidth resizes a page to the given pixel width, preserving aspect
// ratio. Pages at or below the target width are returned unchanged;
// layout heuristics are tuned for a bounded pixel scale.
func ScaleToWidth(page *image.Gray, width int) *image.Gray {
	w, h := page.Rect.Dx(), page.Rect.Dy()
	if width <= 0 || w <= width {
		return page
	}
	scaled := image.NewGray(image.Rect(0, 0, width, h*width/w))
	xdraw.CatmullRom.Scale(scaled, scaled.Rect, page, page.Rect, xdraw.Src, nil)
	return scaled
}
