// Command scanlayout extracts tables and paragraphs from scanned financial
// documents and writes the structured result as JSON.
//
// Usage:
//
//	scanlayout -input statement.pdf -output statement.json
//	scanlayout -input scans/ -format tsv
//
// Recognition requires building with -tags ocr and a local Tesseract
// installation; without it the tool still reports document structure with
// empty text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/scanlayout/config"
	"github.com/tsawler/scanlayout/extract"
	"github.com/tsawler/scanlayout/model"
	"github.com/tsawler/scanlayout/ocr"
	"github.com/tsawler/scanlayout/rasterize"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "input PDF file, image file or directory of page images (required)")
		outputPath = flag.String("output", "", "output file; defaults to stdout")
		configPath = flag.String("config", "", "YAML configuration file")
		format     = flag.String("format", "json", "output format: json or tsv")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *inputPath == "" {
		log.Error("missing required -input flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Error("invalid configuration", "error", err)
			os.Exit(1)
		}
	}

	if err := run(*inputPath, *outputPath, *format, cfg, log); err != nil {
		log.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, format string, cfg config.Config, log *slog.Logger) error {
	source, err := openSource(inputPath)
	if err != nil {
		return err
	}
	defer source.Close()

	engine := ocr.NewTesseractEngine(cfg.Languages...)
	extractor, err := extract.New(engine, cfg, log)
	if err != nil {
		return err
	}

	doc := model.NewDocument(nil)
	for i := 0; i < source.PageCount(); i++ {
		page, err := source.Render(i, cfg.DPI)
		if err != nil {
			return fmt.Errorf("render page %d: %w", i, err)
		}
		page = rasterize.ScaleToWidth(page, cfg.MaxPageWidth)
		doc.AddPage(extractor.ExtractPage(page, i))
	}

	return writeOutput(doc, outputPath, format)
}

// openSource picks the page source by input type: PDFs render through
// MuPDF, everything else decodes as page images.
func openSource(path string) (rasterize.Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return rasterize.NewPDF(path)
	}
	return rasterize.NewImages(path)
}

func writeOutput(doc *model.Document, path, format string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "tsv":
		for _, t := range doc.AllTables() {
			if _, err := fmt.Fprintln(out, t.ToTSV()); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
