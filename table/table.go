// Package table rebuilds tabular grids from the positioned text of a single
// page: rows are clustered from token tops, column seams are inferred from
// ruled lines or token edges, the page is cut into tables at large vertical
// gaps, and each table is turned into a rectangular grid of strings.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrDegeneratePage is returned when a page has no usable geometry, for
	// example no tokens or a zero row tolerance.
	ErrDegeneratePage = errors.New("table: degenerate page geometry")

	// ErrNoColumns is returned when no column boundaries can be derived.
	ErrNoColumns = errors.New("table: no column boundaries")
)

// Row clustering strategies.
const (
	RowsBand    = "band"
	RowsDensity = "density"
)

// Column detection strategies used when a page has no vertical rules.
const (
	ColumnsEdges     = "edges"
	ColumnsHistogram = "histogram"
)

// Continuation merge modes.
const (
	MergeFill   = "fill"
	MergeConcat = "concat"
)

// Config carries the per-page heuristics. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	RowStrategy     string  // RowsBand or RowsDensity
	ToleranceFactor float64 // band: multiplier of the median token height
	Tolerance       float64 // band: fixed tolerance, overrides ToleranceFactor when > 0
	DensityEps      float64 // density: neighbourhood radius on token tops

	ColumnStrategy      string  // ColumnsEdges or ColumnsHistogram
	ColumnMergeGap      float64 // edges: max distance between edges merged into one seam
	HistogramBins       int
	HistogramPercentile float64

	TableGapFraction      float64 // vertical gap, as a fraction of page height, that starts a new table
	ContinuationThreshold int
	MergeMode             string
	DropOutOfRange        bool

	Keywords     []string
	MinTableRows int
}

// DefaultConfig returns the heuristics tuned for statement-style documents.
func DefaultConfig() Config {
	return Config{
		RowStrategy:           RowsBand,
		ToleranceFactor:       1.5,
		DensityEps:            5,
		ColumnStrategy:        ColumnsEdges,
		ColumnMergeGap:        5,
		HistogramBins:         20,
		HistogramPercentile:   70,
		TableGapFraction:      0.05,
		ContinuationThreshold: 2,
		MergeMode:             MergeFill,
		Keywords:              DefaultKeywords(),
		MinTableRows:          2,
	}
}

// DefaultKeywords returns the boilerplate markers dropped by the row filter.
func DefaultKeywords() []string {
	return []string{"page", "bank", "date", "grand total", "branch", "account", "nomination"}
}

// Clusterer returns the row clustering strategy selected by the config.
func (c Config) Clusterer() (RowClusterer, error) {
	switch c.RowStrategy {
	case RowsBand, "":
		return BandClusterer{Factor: c.ToleranceFactor, Tolerance: c.Tolerance}, nil
	case RowsDensity:
		return DensityClusterer{Eps: c.DensityEps}, nil
	default:
		return nil, fmt.Errorf("unknown row strategy %q", c.RowStrategy)
	}
}

// Table is a named grid ready for a sink.
type Table struct {
	Name  string `json:"name"`
	Page  int    `json:"page"`  // 1-based page the table was found on
	Index int    `json:"index"` // position of the table on its page, top first
	Grid  Grid   `json:"grid"`
}

// PageInput is the geometry of one page as delivered by a token source.
type PageInput struct {
	Tokens []Token
	Lines  []Line
	Width  float64
	Height float64
}

// ExtractPage runs the full reconstruction on one page and returns the grids
// that survive filtering, top to bottom. rc and filter may be nil, in which
// case they are built from cfg. Grids with fewer than two rows are never
// returned.
func ExtractPage(in PageInput, rc RowClusterer, filter *RowFilter, cfg Config) ([]Grid, error) {
	if len(in.Tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens", ErrDegeneratePage)
	}
	if in.Height <= 0 {
		return nil, fmt.Errorf("%w: page height %.2f", ErrDegeneratePage, in.Height)
	}
	if rc == nil {
		var err error
		if rc, err = cfg.Clusterer(); err != nil {
			return nil, err
		}
	}
	if filter == nil {
		filter = NewRowFilter(cfg.Keywords)
	}

	bounds, err := DetectColumns(in.Tokens, in.Lines, in.Width, cfg)
	if err != nil {
		return nil, err
	}

	rows, err := rc.Cluster(in.Tokens)
	if err != nil {
		return nil, err
	}

	minRows := max(cfg.MinTableRows, 2)
	var grids []Grid
	for _, seg := range Segment(rows, in.Height*cfg.TableGapFraction) {
		grid := filter.Apply(BuildGrid(seg, bounds, cfg))
		if len(grid) < minRows {
			continue
		}
		grids = append(grids, grid)
	}
	return grids, nil
}
