package table

import (
	"fmt"
	"math"
	"sort"
)

// DetectColumns returns the column boundaries for a page: a strictly
// increasing list starting at 0 and ending at width. Vertical rules win when
// the page has any; otherwise the seams come from token geometry using the
// configured strategy.
func DetectColumns(tokens []Token, lines []Line, width float64, cfg Config) ([]float64, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: page width %v", ErrDegeneratePage, width)
	}

	var xs []float64
	for _, l := range lines {
		if l.Vertical() {
			xs = append(xs, l.X0, l.X1)
		}
	}

	if len(xs) == 0 {
		if len(tokens) == 0 {
			return nil, ErrNoColumns
		}
		switch cfg.ColumnStrategy {
		case ColumnsHistogram:
			xs = histogramSeams(tokens, cfg.HistogramBins, cfg.HistogramPercentile)
		case ColumnsEdges, "":
			xs = mergeEdges(tokens, cfg.ColumnMergeGap)
		default:
			return nil, fmt.Errorf("unknown column strategy %q", cfg.ColumnStrategy)
		}
	}

	return bracket(xs, width), nil
}

// mergeEdges collects every left and right edge and collapses runs of edges
// closer than gap into their running average.
func mergeEdges(tokens []Token, gap float64) []float64 {
	xs := make([]float64, 0, 2*len(tokens))
	for _, t := range tokens {
		xs = append(xs, t.Left, t.Right)
	}
	sort.Float64s(xs)

	merged := make([]float64, 0, len(xs))
	prev := xs[0]
	for _, x := range xs[1:] {
		if x-prev <= gap {
			prev = (prev + x) / 2
			continue
		}
		merged = append(merged, prev)
		prev = x
	}
	return append(merged, prev)
}

// histogramSeams bins token left edges and keeps the start of every bin
// busier than the given percentile of bin counts.
func histogramSeams(tokens []Token, bins int, pct float64) []float64 {
	if bins <= 0 {
		bins = 20
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range tokens {
		lo = math.Min(lo, t.Left)
		hi = math.Max(hi, t.Left)
	}
	if hi == lo {
		return []float64{lo}
	}

	step := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, t := range tokens {
		i := int((t.Left - lo) / step)
		if i >= bins {
			i = bins - 1 // the last bin is closed on the right
		}
		counts[i]++
	}

	threshold := percentile(counts, pct)
	var xs []float64
	for i, c := range counts {
		if c > threshold {
			xs = append(xs, lo+float64(i)*step)
		}
	}
	return xs
}

// percentile uses linear interpolation between closest ranks.
func percentile(vs []float64, p float64) float64 {
	s := make([]float64, len(vs))
	copy(s, vs)
	sort.Float64s(s)
	if len(s) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(s) {
		hi = len(s) - 1
	}
	return s[lo] + (s[hi]-s[lo])*(rank-float64(lo))
}

// bracket sorts xs, drops anything outside (0, width) and duplicates, and
// adds the page edges.
func bracket(xs []float64, width float64) []float64 {
	sort.Float64s(xs)
	out := make([]float64, 0, len(xs)+2)
	out = append(out, 0)
	for _, x := range xs {
		if x <= out[len(out)-1] || x >= width {
			continue
		}
		out = append(out, x)
	}
	return append(out, width)
}
