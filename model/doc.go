// Package model defines the data types produced by scan-layout extraction:
// bounding boxes, table cells with row/column span geometry, tables,
// free-text paragraphs, pages, and documents.
//
// All coordinates are integer pixels in the page image's coordinate space,
// with the origin at the top-left corner. Within one Table, every atomic
// (row, col) grid unit is covered by exactly one Cell; row lists and column
// counts are derived views over the cell list, never stored redundantly.
package model
