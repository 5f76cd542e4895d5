// Package rasterize turns input documents into the grayscale page images
// the extraction pipeline consumes. PDFs are rendered through MuPDF
// (go-fitz); plain raster scans are decoded directly.
package rasterize
