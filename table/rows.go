package table

import (
	"fmt"
	"math"
	"sort"
)

// RowClusterer partitions the tokens of one page into rows ordered top to
// bottom.
type RowClusterer interface {
	Cluster(tokens []Token) ([]Row, error)
}

// BandClusterer snaps each token's top to a grid whose pitch is derived from
// the page's typography: the median token height times Factor. Tokens that
// snap to the same grid line form one row. A positive Tolerance replaces the
// derived pitch.
type BandClusterer struct {
	Factor    float64
	Tolerance float64
}

// Cluster implements RowClusterer.
func (b BandClusterer) Cluster(tokens []Token) ([]Row, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens", ErrDegeneratePage)
	}
	tol := b.Tolerance
	if tol <= 0 {
		tol = medianHeight(tokens) * b.Factor
	}
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return nil, fmt.Errorf("%w: row tolerance %v", ErrDegeneratePage, tol)
	}

	byKey := make(map[float64]*Row)
	var keys []float64
	for _, t := range tokens {
		key := math.Round(t.Top/tol) * tol
		r, ok := byKey[key]
		if !ok {
			r = &Row{Y: key}
			byKey[key] = r
			keys = append(keys, key)
		}
		r.Tokens = append(r.Tokens, t)
	}
	sort.Float64s(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *byKey[k])
	}
	return rows, nil
}

// DensityClusterer groups tokens whose tops are chained within Eps of each
// other. This is DBSCAN on one dimension with a minimum cluster size of one.
// A row's Y is the mean top of its tokens.
type DensityClusterer struct {
	Eps float64
}

// Cluster implements RowClusterer.
func (d DensityClusterer) Cluster(tokens []Token) ([]Row, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens", ErrDegeneratePage)
	}
	if d.Eps <= 0 || math.IsNaN(d.Eps) {
		return nil, fmt.Errorf("%w: density radius %v", ErrDegeneratePage, d.Eps)
	}

	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var rows []Row
	var sum float64
	cur := Row{}
	prevTop := sorted[0].Top
	for _, t := range sorted {
		if len(cur.Tokens) > 0 && t.Top-prevTop > d.Eps {
			cur.Y = sum / float64(len(cur.Tokens))
			rows = append(rows, cur)
			cur, sum = Row{}, 0
		}
		cur.Tokens = append(cur.Tokens, t)
		sum += t.Top
		prevTop = t.Top
	}
	cur.Y = sum / float64(len(cur.Tokens))
	rows = append(rows, cur)
	return rows, nil
}

func medianHeight(tokens []Token) float64 {
	hs := make([]float64, len(tokens))
	for i, t := range tokens {
		hs[i] = t.Height()
	}
	return median(hs)
}

// median sorts vs in place.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}
