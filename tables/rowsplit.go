package tables

import (
	"image"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/model"
	"github.com/tsawler/scanlayout/ocr"
)

// RowSplitter decomposes detected grid rows that visually stack several
// records. The tell is a financial column whose cell carries more than one
// amount with the amounts vertically separated: the grid missed a
// horizontal rule there.
//
// Splitting re-runs recognition on each zone crop rather than splitting the
// previously recognized string, so the zone text is authoritative.
type RowSplitter struct {
	// Tolerance is the maximum vertical center distance, in pixels, for
	// two amount lines to belong to the same logical sub-row.
	Tolerance int

	engine ocr.Engine
	log    *slog.Logger
}

// NewRowSplitter creates a splitter using the given recognition engine for
// zone re-recognition.
func NewRowSplitter(engine ocr.Engine, log *slog.Logger) *RowSplitter {
	if log == nil {
		log = slog.Default()
	}
	return &RowSplitter{
		Tolerance: 15,
		engine:    engine,
		log:       log,
	}
}

// textLine is a group of word boxes forming one visual line of text inside
// a cell.
type textLine struct {
	blobs   []model.BBox
	cell    *model.Cell
	yCenter float64
}

// Process normalizes every table in place: rows holding multiple stacked
// records are replaced by one logical row per record, the table's cell
// list is rebuilt and row indices are renumbered sequentially. page is the
// cleaned page image used for zone re-recognition.
func (s *RowSplitter) Process(tables []*model.Table, page *image.Gray) {
	for _, table := range tables {
		// Financial columns are a per-table decision; row contents alone
		// are too sparse to re-derive them reliably per row.
		fc := DetectFinancialColumns(table.Cells)

		var finalCells []*model.Cell
		nextRow := 0
		for _, row := range groupCellsByRow(table.Cells) {
			cells, next := s.processRow(row, fc, page, nextRow)
			finalCells = append(finalCells, cells...)
			nextRow = next
		}
		table.Cells = finalCells
	}
}

// processRow decides whether one grid row holds multiple records and either
// renumbers it unchanged or splits it. Returns the row's cells and the next
// free row index.
func (s *RowSplitter) processRow(row []*model.Cell, fc FinancialColumns, page *image.Gray, startRow int) ([]*model.Cell, int) {
	lines := extractTextLines(row)
	if len(lines) <= 1 {
		return renumberRow(row, startRow)
	}
	if !hasMultipleAmounts(row, fc) {
		return renumberRow(row, startRow)
	}

	clusters := s.clusterFinancialLines(lines, fc)
	if len(clusters) <= 1 {
		return renumberRow(row, startRow)
	}

	splits := splitPositions(clusters)
	return s.buildZoneCells(row, splits, page, startRow)
}

// hasMultipleAmounts reports whether any financial-column cell of the row
// contains more than one currency value.
func hasMultipleAmounts(row []*model.Cell, fc FinancialColumns) bool {
	for _, cell := range row {
		if fc.contains(cell.Col) && len(ExtractCurrencyValues(cell.Text)) > 1 {
			return true
		}
	}
	return false
}

// clusterFinancialLines groups the row's amount-bearing text lines by
// vertical center. Each cluster is one logical sub-row.
func (s *RowSplitter) clusterFinancialLines(lines []textLine, fc FinancialColumns) [][]textLine {
	var financial []textLine
	for _, ln := range lines {
		if fc.contains(ln.cell.Col) && ContainsCurrencyValue(ln.cell.Text) {
			financial = append(financial, ln)
		}
	}
	if len(financial) <= 1 {
		return nil
	}

	var clusters [][]textLine
	current := []textLine{financial[0]}
	for _, ln := range financial[1:] {
		last := current[len(current)-1]
		if ln.yCenter-last.yCenter <= float64(s.Tolerance) {
			current = append(current, ln)
		} else {
			clusters = append(clusters, current)
			current = []textLine{ln}
		}
	}
	return append(clusters, current)
}

// splitPositions computes the Y coordinate between each pair of adjacent
// clusters: the midpoint between the lower edge of one cluster's boxes and
// the upper edge of the next cluster's.
func splitPositions(clusters [][]textLine) []int {
	var positions []int
	for i := 0; i < len(clusters)-1; i++ {
		maxY2 := 0
		for _, ln := range clusters[i] {
			for _, b := range ln.blobs {
				if b.Y2 > maxY2 {
					maxY2 = b.Y2
				}
			}
		}
		minY1 := int(^uint(0) >> 1)
		for _, ln := range clusters[i+1] {
			for _, b := range ln.blobs {
				if b.Y1 < minY1 {
					minY1 = b.Y1
				}
			}
		}
		positions = append(positions, (maxY2+minY1)/2)
	}
	return positions
}

// buildZoneCells replaces a split row with one row of fresh cells per zone.
// Every zone yields a cell for every source cell, empty when no word box
// falls inside, so column alignment is preserved. The union of word boxes
// over all zones equals the source row's word-box set.
func (s *RowSplitter) buildZoneCells(row []*model.Cell, splits []int, page *image.Gray, startRow int) ([]*model.Cell, int) {
	rowY1 := row[0].BBox.Y1
	rowY2 := row[0].BBox.Y2
	for _, cell := range row[1:] {
		if cell.BBox.Y1 < rowY1 {
			rowY1 = cell.BBox.Y1
		}
		if cell.BBox.Y2 > rowY2 {
			rowY2 = cell.BBox.Y2
		}
	}

	boundaries := append([]int{rowY1}, splits...)
	boundaries = append(boundaries, rowY2)

	var out []*model.Cell
	for zone := 0; zone < len(boundaries)-1; zone++ {
		yStart, yEnd := boundaries[zone], boundaries[zone+1]
		lastZone := zone == len(boundaries)-2
		for _, cell := range row {
			var blobs []model.BBox
			for _, b := range cell.Blobs {
				center := b.CenterY()
				if center >= yStart && (center < yEnd || (lastZone && center <= yEnd)) {
					blobs = append(blobs, b)
				}
			}

			newCell := &model.Cell{
				BBox:            model.NewBBox(cell.BBox.X1, yStart, cell.BBox.X2, yEnd),
				Row:             startRow + zone,
				Col:             cell.Col,
				ColSpan:         cell.ColSpan,
				RowSpan:         1,
				Blobs:           blobs,
				OriginalPageNum: cell.OriginalPageNum,
			}
			if len(blobs) > 0 {
				newCell.Text = s.recognizeZone(page, newCell.BBox)
			}
			out = append(out, newCell)
		}
	}
	s.log.Debug("row split", "zones", len(boundaries)-1, "cells", len(out))
	return out, startRow + len(boundaries) - 1
}

// recognizeZone re-runs recognition on a zone crop. Failures degrade to an
// empty string; they never abort the split.
func (s *RowSplitter) recognizeZone(page *image.Gray, box model.BBox) string {
	region := imaging.Crop(page, box.Rect())
	if region.Rect.Empty() {
		return ""
	}
	text, _, err := s.engine.Recognize(region)
	if err != nil {
		s.log.Error("zone recognition failed", "bbox", box, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// extractTextLines groups every cell's word boxes into visual lines and
// returns them ordered by vertical center.
func extractTextLines(row []*model.Cell) []textLine {
	var lines []textLine
	for _, cell := range row {
		for _, blobs := range linesInCell(cell) {
			sum := 0.0
			for _, b := range blobs {
				sum += float64(b.Y1) + float64(b.Height())/2
			}
			lines = append(lines, textLine{
				blobs:   blobs,
				cell:    cell,
				yCenter: sum / float64(len(blobs)),
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].yCenter < lines[j].yCenter })
	return lines
}

// linesInCell groups a cell's word boxes by vertical proximity: a new line
// starts when a box's vertical center differs from the previous box's by
// more than half that box's height.
func linesInCell(cell *model.Cell) [][]model.BBox {
	if len(cell.Blobs) == 0 {
		return nil
	}
	blobs := make([]model.BBox, len(cell.Blobs))
	copy(blobs, cell.Blobs)
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].Y1 < blobs[j].Y1 })

	var lines [][]model.BBox
	current := []model.BBox{blobs[0]}
	for _, b := range blobs[1:] {
		last := current[len(current)-1]
		tolerance := last.Height() / 2
		if abs(b.CenterY()-last.CenterY()) <= tolerance {
			current = append(current, b)
		} else {
			lines = append(lines, current)
			current = []model.BBox{b}
		}
	}
	return append(lines, current)
}

// groupCellsByRow orders cells by (row, col) and groups them by row index.
func groupCellsByRow(cells []*model.Cell) [][]*model.Cell {
	sorted := make([]*model.Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	var rows [][]*model.Cell
	for _, cell := range sorted {
		if n := len(rows); n > 0 && rows[n-1][0].Row == cell.Row {
			rows[n-1] = append(rows[n-1], cell)
		} else {
			rows = append(rows, []*model.Cell{cell})
		}
	}
	return rows
}

// renumberRow keeps a row unchanged apart from assigning it the next
// sequential row index.
func renumberRow(row []*model.Cell, rowIndex int) ([]*model.Cell, int) {
	for _, cell := range row {
		cell.Row = rowIndex
	}
	return row, rowIndex + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
