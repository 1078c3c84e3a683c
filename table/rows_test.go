package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowTexts(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		for _, t := range r.Sorted() {
			out[i] = append(out[i], t.Text)
		}
	}
	return out
}

func TestBandClustererAbsorbsJitter(t *testing.T) {
	tokens := []Token{
		tok("Alice", 50, 100),
		tok("30", 200, 101.5),
		tok("London", 300, 103),
		tok("Bob", 50, 130),
		tok("41", 200, 131),
	}

	rows, err := BandClusterer{Factor: 1.5}.Cluster(tokens)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, [][]string{{"Alice", "30", "London"}, {"Bob", "41"}}, rowTexts(rows))
	assert.InDelta(t, 105, rows[0].Y, 1e-9)
	assert.InDelta(t, 135, rows[1].Y, 1e-9)
}

func TestBandClustererOrdersTopToBottom(t *testing.T) {
	tokens := []Token{tok("c", 0, 300), tok("a", 0, 100), tok("b", 0, 200)}

	rows, err := BandClusterer{Factor: 1.5}.Cluster(tokens)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, rowTexts(rows))
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].Y, rows[i].Y)
	}
}

func TestBandClustererFixedTolerance(t *testing.T) {
	tokens := []Token{tok("a", 0, 100), tok("b", 0, 104)}

	rows, err := BandClusterer{Factor: 1.5, Tolerance: 3}.Cluster(tokens)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestBandClustererSameBandUnderHalfTolerance(t *testing.T) {
	const tol = 15.0
	for k := 2; k < 40; k++ {
		base := float64(k) * tol
		tokens := []Token{
			tok("x", 0, base-tol/2+0.01),
			tok("y", 50, base),
			tok("z", 100, base+tol/2-0.01),
		}
		rows, err := BandClusterer{Tolerance: tol}.Cluster(tokens)
		require.NoError(t, err)
		require.Len(t, rows, 1, "band %d", k)
		assert.InDelta(t, base, rows[0].Y, 1e-9)
	}
}

func TestBandClustererDegenerate(t *testing.T) {
	_, err := BandClusterer{Factor: 1.5}.Cluster(nil)
	assert.ErrorIs(t, err, ErrDegeneratePage)

	flat := []Token{{Text: "a", Left: 0, Right: 5, Top: 10, Bottom: 10}}
	_, err = BandClusterer{Factor: 1.5}.Cluster(flat)
	assert.ErrorIs(t, err, ErrDegeneratePage)
}

func TestDensityClustererChainsNeighbours(t *testing.T) {
	tokens := []Token{
		tok("b", 50, 102),
		tok("a", 0, 100),
		tok("c", 100, 104),
		tok("d", 0, 120),
	}

	rows, err := DensityClusterer{Eps: 5}.Cluster(tokens)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}}, rowTexts(rows))
	assert.InDelta(t, 102, rows[0].Y, 1e-9)
	assert.InDelta(t, 120, rows[1].Y, 1e-9)
}

func TestDensityClustererDegenerate(t *testing.T) {
	_, err := DensityClusterer{Eps: 5}.Cluster(nil)
	assert.ErrorIs(t, err, ErrDegeneratePage)

	_, err = DensityClusterer{}.Cluster([]Token{tok("a", 0, 0)})
	assert.ErrorIs(t, err, ErrDegeneratePage)
}

func TestConfigClusterer(t *testing.T) {
	cfg := DefaultConfig()
	rc, err := cfg.Clusterer()
	require.NoError(t, err)
	assert.IsType(t, BandClusterer{}, rc)

	cfg.RowStrategy = RowsDensity
	rc, err = cfg.Clusterer()
	require.NoError(t, err)
	assert.Equal(t, DensityClusterer{Eps: 5}, rc)

	cfg.RowStrategy = "kmeans"
	_, err = cfg.Clusterer()
	assert.Error(t, err)
}

func TestRowSortedLeavesRowIntact(t *testing.T) {
	r := Row{Tokens: []Token{tok("b", 20, 0), tok("a", 10, 0)}}
	sorted := r.Sorted()
	assert.Equal(t, "a", sorted[0].Text)
	assert.Equal(t, "b", r.Tokens[0].Text)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
}
