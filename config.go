package gotables

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/brunobiangulo/gotables/table"
)

// Table naming styles.
const (
	NamePage  = "page"  // Page_<n>, Page_<n>_<k> for further tables on a page
	NameTable = "table" // Table_<k> across the whole document
)

// Config holds all configuration for the extractor. Every heuristic lives
// here so that documents with different layouts can be processed side by
// side with independent settings.
type Config struct {
	// Row filter
	HeaderFooterKeywords []string `json:"header_footer_keywords" yaml:"header_footer_keywords"`

	// Row clustering: "band" snaps token tops to a grid whose pitch is the
	// median token height times RowToleranceFactor (or RowTolerance when
	// set); "density" chains tops closer than DensityEps.
	RowStrategy        string  `json:"row_strategy" yaml:"row_strategy"`
	RowToleranceFactor float64 `json:"row_tolerance_factor" yaml:"row_tolerance_factor"`
	RowTolerance       float64 `json:"row_tolerance" yaml:"row_tolerance"`
	DensityEps         float64 `json:"density_eps" yaml:"density_eps"`

	// Pages whose alphanumeric text is shorter than this are skipped.
	MinPageTextLength int `json:"min_page_text_length" yaml:"min_page_text_length"`

	// Column detection when the page has no vertical rules: "edges" or "histogram".
	ColumnStrategy      string  `json:"column_strategy" yaml:"column_strategy"`
	ColumnMergeGap      float64 `json:"column_merge_gap" yaml:"column_merge_gap"`
	HistogramBins       int     `json:"histogram_bins" yaml:"histogram_bins"`
	HistogramPercentile float64 `json:"histogram_percentile" yaml:"histogram_percentile"`

	// Table segmentation and cell building
	TableGapFraction      float64 `json:"table_gap_fraction_of_page_height" yaml:"table_gap_fraction_of_page_height"`
	ContinuationThreshold int     `json:"continuation_diff_threshold" yaml:"continuation_diff_threshold"`
	MergeMode             string  `json:"merge_mode" yaml:"merge_mode"` // fill, concat
	DropOutOfRange        bool    `json:"drop_out_of_range" yaml:"drop_out_of_range"`
	MinTableRows          int     `json:"min_table_rows" yaml:"min_table_rows"`

	// Token source
	WordGap float64 `json:"word_gap" yaml:"word_gap"` // max gap between glyphs of one word

	// Runtime
	Concurrency int    `json:"concurrency" yaml:"concurrency"` // pages analysed in parallel (default 1)
	NameStyle   string `json:"name_style" yaml:"name_style"`
}

// DefaultConfig returns a Config with the defaults the heuristics were tuned
// with.
func DefaultConfig() Config {
	t := table.DefaultConfig()
	return Config{
		HeaderFooterKeywords:  t.Keywords,
		RowStrategy:           t.RowStrategy,
		RowToleranceFactor:    t.ToleranceFactor,
		DensityEps:            t.DensityEps,
		MinPageTextLength:     20,
		ColumnStrategy:        t.ColumnStrategy,
		ColumnMergeGap:        t.ColumnMergeGap,
		HistogramBins:         t.HistogramBins,
		HistogramPercentile:   t.HistogramPercentile,
		TableGapFraction:      t.TableGapFraction,
		ContinuationThreshold: t.ContinuationThreshold,
		MergeMode:             t.MergeMode,
		MinTableRows:          t.MinTableRows,
		WordGap:               2,
		Concurrency:           1,
		NameStyle:             NamePage,
	}
}

// LoadConfig reads a JSON or YAML file (chosen by extension) over the
// defaults. Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.RowStrategy != table.RowsBand && c.RowStrategy != table.RowsDensity:
		return fmt.Errorf("%w: row_strategy %q", ErrInvalidConfig, c.RowStrategy)
	case c.RowStrategy == table.RowsBand && c.RowTolerance <= 0 && c.RowToleranceFactor <= 0:
		return fmt.Errorf("%w: band clustering needs row_tolerance or row_tolerance_factor > 0", ErrInvalidConfig)
	case c.RowStrategy == table.RowsDensity && c.DensityEps <= 0:
		return fmt.Errorf("%w: density_eps must be > 0", ErrInvalidConfig)
	case c.ColumnStrategy != table.ColumnsEdges && c.ColumnStrategy != table.ColumnsHistogram:
		return fmt.Errorf("%w: column_strategy %q", ErrInvalidConfig, c.ColumnStrategy)
	case c.ColumnMergeGap < 0:
		return fmt.Errorf("%w: column_merge_gap must be >= 0", ErrInvalidConfig)
	case c.HistogramPercentile < 0 || c.HistogramPercentile > 100:
		return fmt.Errorf("%w: histogram_percentile must be within [0, 100]", ErrInvalidConfig)
	case c.TableGapFraction <= 0 || c.TableGapFraction > 1:
		return fmt.Errorf("%w: table_gap_fraction_of_page_height must be within (0, 1]", ErrInvalidConfig)
	case c.ContinuationThreshold < 0:
		return fmt.Errorf("%w: continuation_diff_threshold must be >= 0", ErrInvalidConfig)
	case c.MergeMode != table.MergeFill && c.MergeMode != table.MergeConcat:
		return fmt.Errorf("%w: merge_mode %q", ErrInvalidConfig, c.MergeMode)
	case c.MinPageTextLength < 0:
		return fmt.Errorf("%w: min_page_text_length must be >= 0", ErrInvalidConfig)
	case c.Concurrency < 1:
		return fmt.Errorf("%w: concurrency must be >= 1", ErrInvalidConfig)
	case c.NameStyle != NamePage && c.NameStyle != NameTable:
		return fmt.Errorf("%w: name_style %q", ErrInvalidConfig, c.NameStyle)
	}
	return nil
}

// tableConfig projects the per-page heuristics.
func (c *Config) tableConfig() table.Config {
	return table.Config{
		RowStrategy:           c.RowStrategy,
		ToleranceFactor:       c.RowToleranceFactor,
		Tolerance:             c.RowTolerance,
		DensityEps:            c.DensityEps,
		ColumnStrategy:        c.ColumnStrategy,
		ColumnMergeGap:        c.ColumnMergeGap,
		HistogramBins:         c.HistogramBins,
		HistogramPercentile:   c.HistogramPercentile,
		TableGapFraction:      c.TableGapFraction,
		ContinuationThreshold: c.ContinuationThreshold,
		MergeMode:             c.MergeMode,
		DropOutOfRange:        c.DropOutOfRange,
		Keywords:              c.HeaderFooterKeywords,
		MinTableRows:          c.MinTableRows,
	}
}
