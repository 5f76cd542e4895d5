// Package config holds the extraction pipeline settings and their YAML
// file representation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every tunable of the extraction pipeline. The zero value
// is not usable; start from Default.
type Config struct {
	// Workers is the size of the recognition worker pool.
	Workers int `yaml:"workers"`
	// DPI used when rasterizing PDF pages.
	DPI int `yaml:"dpi"`
	// MaxPageWidth rescales rendered pages wider than this. Zero disables
	// rescaling.
	MaxPageWidth int `yaml:"max_page_width"`
	// Languages passed to the recognition engine.
	Languages []string `yaml:"languages"`
	// SpanMode selects which merged-cell spans the grid builder grows:
	// "none", "columns", "rows" or "both".
	SpanMode string `yaml:"span_mode"`
	// MaxCandidates caps the table candidates considered per page.
	MaxCandidates int `yaml:"max_candidates"`
	// MinTableArea rejects candidate regions smaller than this, in pixels.
	MinTableArea int `yaml:"min_table_area"`
	// ClusterTolerance is the vertical distance, in pixels, within which
	// amount lines are treated as one logical row.
	ClusterTolerance int `yaml:"cluster_tolerance"`
}

// Default returns the settings tuned for 300 DPI financial document scans.
func Default() Config {
	return Config{
		Workers:          4,
		DPI:              300,
		MaxPageWidth:     0,
		Languages:        []string{"rus", "eng"},
		SpanMode:         "columns",
		MaxCandidates:    5,
		MinTableArea:     30000,
		ClusterTolerance: 15,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if c.DPI < 1 {
		return fmt.Errorf("config: dpi must be positive, got %d", c.DPI)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("config: at least one language is required")
	}
	switch c.SpanMode {
	case "", "none", "columns", "rows", "both":
	default:
		return fmt.Errorf("config: unknown span_mode %q", c.SpanMode)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("config: max_candidates must be at least 1, got %d", c.MaxCandidates)
	}
	if c.MinTableArea < 0 {
		return fmt.Errorf("config: min_table_area must not be negative, got %d", c.MinTableArea)
	}
	if c.ClusterTolerance < 1 {
		return fmt.Errorf("config: cluster_tolerance must be at least 1, got %d", c.ClusterTolerance)
	}
	return nil
}
