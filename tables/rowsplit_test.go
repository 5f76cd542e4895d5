package tables

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/tsawler/scanlayout/model"
	"github.com/tsawler/scanlayout/ocr"
)

// fakeEngine is a canned recognition engine for split tests.
type fakeEngine struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (f *fakeEngine) Recognize(region *image.Gray) (string, []ocr.Word, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, nil, nil
}

// stackedRowTable builds a 2x3 table whose second row visually stacks two
// records: the amount columns hold two vertically separated amounts each.
func stackedRowTable() *model.Table {
	header := []*model.Cell{
		{BBox: model.NewBBox(0, 0, 100, 40), Row: 0, Col: 0, ColSpan: 1, RowSpan: 1, Text: "Операция",
			Blobs: []model.BBox{model.NewBBox(10, 10, 90, 30)}},
		{BBox: model.NewBBox(100, 0, 200, 40), Row: 0, Col: 1, ColSpan: 1, RowSpan: 1, Text: "Дебет",
			Blobs: []model.BBox{model.NewBBox(110, 10, 190, 30)}},
		{BBox: model.NewBBox(200, 0, 300, 40), Row: 0, Col: 2, ColSpan: 1, RowSpan: 1, Text: "Кредит",
			Blobs: []model.BBox{model.NewBBox(210, 10, 290, 30)}},
	}
	// Two records stacked in one grid row: word boxes around y=50..70 and
	// y=110..130.
	stacked := []*model.Cell{
		{BBox: model.NewBBox(0, 40, 100, 140), Row: 1, Col: 0, ColSpan: 1, RowSpan: 1, Text: "Аренда Связь",
			Blobs: []model.BBox{
				model.NewBBox(10, 50, 90, 70),
				model.NewBBox(10, 110, 90, 130),
			}},
		{BBox: model.NewBBox(100, 40, 200, 140), Row: 1, Col: 1, ColSpan: 1, RowSpan: 1, Text: "1 000,00 2 000,00",
			Blobs: []model.BBox{
				model.NewBBox(110, 50, 190, 70),
				model.NewBBox(110, 110, 190, 130),
			}},
		{BBox: model.NewBBox(200, 40, 300, 140), Row: 1, Col: 2, ColSpan: 1, RowSpan: 1, Text: "3 500,00 4 500,00",
			Blobs: []model.BBox{
				model.NewBBox(210, 50, 290, 70),
				model.NewBBox(210, 110, 290, 130),
			}},
	}
	return &model.Table{
		BBox:  model.NewBBox(0, 0, 300, 140),
		Cells: append(header, stacked...),
	}
}

func testPage() *image.Gray {
	return image.NewGray(image.Rect(0, 0, 300, 140))
}

func countBlobs(cells []*model.Cell) int {
	n := 0
	for _, c := range cells {
		n += len(c.Blobs)
	}
	return n
}

func TestRowSplitterSplitsStackedRecords(t *testing.T) {
	table := stackedRowTable()
	engine := &fakeEngine{text: "re-recognized"}

	NewRowSplitter(engine, nil).Process([]*model.Table{table}, testPage())

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows after split, want 3", len(rows))
	}
	// The header row is untouched.
	if rows[0][1].Text != "Дебет" {
		t.Errorf("header text = %q, want untouched", rows[0][1].Text)
	}
	// Both emitted rows keep the full column set.
	for i, row := range rows[1:] {
		if len(row) != 3 {
			t.Errorf("split row %d has %d cells, want 3", i+1, len(row))
		}
		for _, c := range row {
			if c.RowSpan != 1 {
				t.Errorf("split cell (%d,%d) rowspan = %d, want 1", c.Row, c.Col, c.RowSpan)
			}
		}
	}
	// Zone text comes from re-recognition, not from slicing the old string.
	if rows[1][1].Text != "re-recognized" {
		t.Errorf("split cell text = %q, want re-recognition output", rows[1][1].Text)
	}
}

func TestRowSplitterConservesWordBoxes(t *testing.T) {
	table := stackedRowTable()
	before := countBlobs(table.Cells)

	NewRowSplitter(&fakeEngine{text: "x"}, nil).Process([]*model.Table{table}, testPage())

	if after := countBlobs(table.Cells); after != before {
		t.Errorf("word boxes not conserved: %d before, %d after", before, after)
	}
}

func TestRowSplitterRenumbersSequentially(t *testing.T) {
	table := stackedRowTable()
	// Simulate an upstream gap in row indices.
	for _, c := range table.Cells {
		if c.Row == 1 {
			c.Row = 5
		}
	}

	NewRowSplitter(&fakeEngine{text: "x"}, nil).Process([]*model.Table{table}, testPage())

	seen := map[int]bool{}
	for _, c := range table.Cells {
		seen[c.Row] = true
	}
	for r := 0; r < len(seen); r++ {
		if !seen[r] {
			t.Errorf("row index %d missing, indices must be sequential from 0", r)
		}
	}
}

func TestRowSplitterLeavesSingleRecordRowsAlone(t *testing.T) {
	table := &model.Table{
		Cells: []*model.Cell{
			{BBox: model.NewBBox(0, 0, 100, 40), Row: 0, Col: 0, ColSpan: 1, RowSpan: 1, Text: "Дебет"},
			{BBox: model.NewBBox(100, 0, 200, 40), Row: 0, Col: 1, ColSpan: 1, RowSpan: 1, Text: "Кредит"},
			{BBox: model.NewBBox(0, 40, 100, 80), Row: 1, Col: 0, ColSpan: 1, RowSpan: 1, Text: "1 000,00",
				Blobs: []model.BBox{model.NewBBox(10, 50, 90, 70)}},
			{BBox: model.NewBBox(100, 40, 200, 80), Row: 1, Col: 1, ColSpan: 1, RowSpan: 1, Text: "2 000,00",
				Blobs: []model.BBox{model.NewBBox(110, 50, 190, 70)}},
		},
	}
	engine := &fakeEngine{text: "should not run"}

	NewRowSplitter(engine, nil).Process([]*model.Table{table}, testPage())

	if len(table.Cells) != 4 {
		t.Fatalf("got %d cells, want the original 4", len(table.Cells))
	}
	if engine.calls != 0 {
		t.Errorf("engine called %d times for an unsplit table, want 0", engine.calls)
	}
	if table.Cells[2].Text != "1 000,00" {
		t.Errorf("cell text = %q, want original text kept", table.Cells[2].Text)
	}
}

func TestRowSplitterMiddleRowOnly(t *testing.T) {
	// A 3x2 ledger fragment whose middle row stacks two amounts; outer rows
	// must pass through untouched while the middle row becomes two.
	cell := func(row, col, y0, y1 int, text string, blobs ...model.BBox) *model.Cell {
		return &model.Cell{
			BBox: model.NewBBox(col*100, y0, (col+1)*100, y1),
			Row:  row, Col: col, ColSpan: 1, RowSpan: 1,
			Text: text, Blobs: blobs,
		}
	}
	table := &model.Table{
		BBox: model.NewBBox(0, 0, 200, 240),
		Cells: []*model.Cell{
			cell(0, 0, 0, 40, "A", model.NewBBox(10, 10, 40, 30)),
			cell(0, 1, 0, 40, "1", model.NewBBox(110, 10, 140, 30)),
			cell(1, 0, 40, 180, "B", model.NewBBox(10, 60, 40, 80)),
			cell(1, 1, 40, 180, "2 000,00 3 000,00",
				model.NewBBox(110, 60, 190, 80),
				model.NewBBox(110, 140, 190, 160)),
			cell(2, 0, 180, 240, "C", model.NewBBox(10, 190, 40, 210)),
			cell(2, 1, 180, 240, "4", model.NewBBox(110, 190, 140, 210)),
		},
	}

	NewRowSplitter(&fakeEngine{text: "2 000,00"}, nil).Process([]*model.Table{table}, image.NewGray(image.Rect(0, 0, 200, 240)))

	rows := table.Rows()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0][0].Text != "A" || rows[0][1].Text != "1" {
		t.Errorf("first row changed: %q, %q", rows[0][0].Text, rows[0][1].Text)
	}
	if rows[3][0].Text != "C" || rows[3][1].Text != "4" {
		t.Errorf("last row changed: %q, %q", rows[3][0].Text, rows[3][1].Text)
	}
	// The split rows tile the middle row's vertical extent.
	if rows[1][0].BBox.Y1 != 40 || rows[2][0].BBox.Y2 != 180 {
		t.Errorf("split rows span (%d..%d), want (40..180)",
			rows[1][0].BBox.Y1, rows[2][0].BBox.Y2)
	}
	if rows[1][0].BBox.Y2 != rows[2][0].BBox.Y1 {
		t.Errorf("split rows do not share a boundary: %d vs %d",
			rows[1][0].BBox.Y2, rows[2][0].BBox.Y1)
	}
}

func TestRowSplitterRecognitionFailureLeavesEmptyText(t *testing.T) {
	table := stackedRowTable()

	NewRowSplitter(&fakeEngine{err: errors.New("tesseract crashed")}, nil).
		Process([]*model.Table{table}, testPage())

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want the split to proceed despite failures", len(rows))
	}
	for _, c := range rows[1] {
		if c.Text != "" {
			t.Errorf("cell (%d,%d) text = %q, want empty after failure", c.Row, c.Col, c.Text)
		}
	}
}
