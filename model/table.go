package model

import (
	"sort"
	"strings"
)

// Cell is one cell of a reconstructed table. Row and Col are the indices of
// the top-left atomic grid unit the cell covers; ColSpan and RowSpan count
// how many atomic columns and rows it extends over.
type Cell struct {
	BBox    BBox   `json:"bbox"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	ColSpan int    `json:"colspan"`
	RowSpan int    `json:"rowspan"`
	Text    string `json:"text"`
	// Blobs are the recognized word boxes of the cell, ordered as returned
	// by recognition, in absolute page coordinates.
	Blobs []BBox `json:"blobs,omitempty"`
	// OriginalPageNum records the page a cell came from when tables are
	// stitched across pages.
	OriginalPageNum int `json:"original_page_num,omitempty"`
}

// HasText reports whether the cell holds any non-blank recognized text.
func (c *Cell) HasText() bool {
	return strings.TrimSpace(c.Text) != ""
}

// FreeSpaceRatio estimates the fraction of the cell area not covered by word
// boxes. Used by the write-back layer to decide where corrections fit.
func (c *Cell) FreeSpaceRatio() float64 {
	area := c.BBox.Area()
	if area == 0 {
		return 1.0
	}
	occupied := 0
	for _, b := range c.Blobs {
		occupied += b.Area()
	}
	if occupied > area {
		occupied = area
	}
	return float64(area-occupied) / float64(area)
}

// Table is a reconstructed table: a bounding box and its cells. Rows and
// column counts are derived from the cells, never stored.
type Table struct {
	BBox         BBox    `json:"bbox"`
	Cells        []*Cell `json:"cells"`
	StartPageNum int     `json:"start_page_num"`
}

// Rows groups the table's cells by row index, ordered top to bottom with
// cells ordered left to right inside each row.
func (t *Table) Rows() [][]*Cell {
	if len(t.Cells) == 0 {
		return nil
	}
	byRow := make(map[int][]*Cell)
	for _, c := range t.Cells {
		byRow[c.Row] = append(byRow[c.Row], c)
	}
	keys := make([]int, 0, len(byRow))
	for k := range byRow {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	rows := make([][]*Cell, 0, len(keys))
	for _, k := range keys {
		row := byRow[k]
		sort.Slice(row, func(i, j int) bool { return row[i].Col < row[j].Col })
		rows = append(rows, row)
	}
	return rows
}

// ColumnCount derives the number of atomic grid columns the table spans.
func (t *Table) ColumnCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	maxCol := 0
	for _, c := range t.Cells {
		if last := c.Col + c.ColSpan - 1; last > maxCol {
			maxCol = last
		}
	}
	return maxCol + 1
}

// AverageBlobHeight returns the mean height of all word boxes in the table
// plus a small leading allowance, or a default when the table has no text.
func (t *Table) AverageBlobHeight() float64 {
	sum, n := 0, 0
	for _, c := range t.Cells {
		for _, b := range c.Blobs {
			sum += b.Height()
			n++
		}
	}
	if n == 0 {
		return 12.0
	}
	return float64(sum)/float64(n) + 6
}

// CellAt returns the cell whose span covers the atomic position (row, col),
// or nil if no cell covers it.
func (t *Table) CellAt(row, col int) *Cell {
	for _, c := range t.Cells {
		if row >= c.Row && row < c.Row+c.RowSpan &&
			col >= c.Col && col < c.Col+c.ColSpan {
			return c
		}
	}
	return nil
}

// ToTSV renders the table as tab-separated rows of cell text.
func (t *Table) ToTSV() string {
	var sb strings.Builder
	for _, row := range t.Rows() {
		for j, c := range row {
			sb.WriteString(strings.ReplaceAll(c.Text, "\n", " "))
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
