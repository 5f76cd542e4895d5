package extract

import (
	"errors"
	"image"
	"log/slog"
	"sort"

	"github.com/tsawler/scanlayout/config"
	"github.com/tsawler/scanlayout/imaging"
	"github.com/tsawler/scanlayout/layout"
	"github.com/tsawler/scanlayout/model"
	"github.com/tsawler/scanlayout/ocr"
	"github.com/tsawler/scanlayout/tables"
)

// Extractor turns one grayscale page image into a structured Page. It is
// safe for concurrent use as long as the recognition engine is.
type Extractor struct {
	workers int

	lines      *tables.LineDetector
	candidates *tables.CandidateFinder
	grid       *tables.GridBuilder
	splitter   *tables.RowSplitter
	blocks     *layout.BlockDetector

	engine ocr.Engine
	log    *slog.Logger
}

// New creates an extractor with the given recognition engine and settings.
func New(engine ocr.Engine, cfg config.Config, log *slog.Logger) (*Extractor, error) {
	if log == nil {
		log = slog.Default()
	}
	span, err := tables.ParseSpanMode(cfg.SpanMode)
	if err != nil {
		return nil, err
	}

	candidates := tables.NewCandidateFinder(log)
	candidates.MaxCandidates = cfg.MaxCandidates
	candidates.MinArea = cfg.MinTableArea

	grid := tables.NewGridBuilder()
	grid.Span = span

	splitter := tables.NewRowSplitter(engine, log)
	splitter.Tolerance = cfg.ClusterTolerance

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Extractor{
		workers:    workers,
		lines:      tables.NewLineDetector(),
		candidates: candidates,
		grid:       grid,
		splitter:   splitter,
		blocks:     layout.NewBlockDetector(),
		engine:     engine,
		log:        log,
	}, nil
}

// ErrEmptyImage marks a nil or zero-sized page image. It is logged, never
// returned: extraction is total and degrades to an empty page.
var ErrEmptyImage = errors.New("extract: empty page image")

// ExtractPage analyzes one page image and returns its tables and
// paragraphs. pageNum is recorded on the page and everything extracted
// from it. A nil or empty image yields an empty page.
func (e *Extractor) ExtractPage(img image.Image, pageNum int) *model.Page {
	log := e.log.With("page", pageNum)
	if img == nil {
		log.Warn("skipping page", "reason", ErrEmptyImage)
		return model.NewPage(0, 0, pageNum)
	}
	gray := imaging.Grayscale(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	page := model.NewPage(w, h, pageNum)
	if w == 0 || h == 0 {
		log.Warn("skipping page", "reason", ErrEmptyImage)
		return page
	}

	cleaned := imaging.Preprocess(gray)

	ink := imaging.BinarizeInv(cleaned, 128)
	ink = imaging.Dilate(ink, 3, 3, 1)
	hMask, vMask := e.lines.Detect(ink)

	candidateBoxes := e.candidates.Find(hMask, vMask)

	var (
		pageTables []*model.Table
		demoted    []*model.Paragraph
	)
	for _, roi := range candidateBoxes {
		table, err := e.buildTable(roi, hMask, vMask, cleaned, pageNum)
		if err != nil {
			// Not enough structure for a grid: the region is still content,
			// keep it as a free-text block.
			log.Debug("candidate demoted to paragraph", "bbox", roi, "reason", err)
			demoted = append(demoted, &model.Paragraph{
				BBox:    roi,
				Type:    model.ParagraphNone,
				PageNum: pageNum,
			})
			continue
		}
		pageTables = append(pageTables, table)
	}

	tableBoxes := make([]model.BBox, 0, len(pageTables))
	for _, t := range pageTables {
		tableBoxes = append(tableBoxes, t.BBox)
	}
	// Every candidate region is blanked during block detection so its
	// content is not picked up twice, demoted regions included.
	paragraphs := e.blocks.Detect(cleaned, candidateBoxes)
	for _, p := range paragraphs {
		p.Type = e.blocks.Classify(p.BBox, tableBoxes)
		p.PageNum = pageNum
	}
	paragraphs = append(paragraphs, demoted...)
	sort.Slice(paragraphs, func(i, j int) bool {
		return paragraphs[i].BBox.Y1 < paragraphs[j].BBox.Y1
	})

	e.recognizeAll(cleaned, pageTables, paragraphs)

	e.splitter.Process(pageTables, cleaned)

	page.Tables = pageTables
	page.Paragraphs = paragraphs
	log.Info("page extracted",
		"tables", len(pageTables),
		"paragraphs", len(paragraphs))
	return page
}

var errSingleCell = errors.New("extract: grid collapsed to a single cell")

// buildTable reconstructs the grid of one candidate region and erases its
// ruling lines from the cleaned page so recognition sees text only.
func (e *Extractor) buildTable(roi model.BBox, hMask, vMask, cleaned *image.Gray, pageNum int) (*model.Table, error) {
	fh, fv := e.candidates.FilterLines(hMask, vMask, roi)

	cells, err := e.grid.Build(roi, fv, fh)
	if err != nil {
		return nil, err
	}
	if len(cells) <= 1 {
		return nil, errSingleCell
	}

	region := cleaned.SubImage(roi.Rect()).(*image.Gray)
	imaging.RemoveMask(region, imaging.Or(fh, fv), 255)

	for _, c := range cells {
		c.OriginalPageNum = pageNum
	}
	return &model.Table{
		BBox:         roi,
		Cells:        cells,
		StartPageNum: pageNum,
	}, nil
}
