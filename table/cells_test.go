package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(y float64, tokens ...Token) Row { return Row{Y: y, Tokens: tokens} }

func TestBuildGridHeaderAndData(t *testing.T) {
	seg := []Row{
		row(100, tok("Age", 200, 100), tok("Name", 50, 100)),
		row(120, tok("Alice", 50, 120), tok("30", 200, 120)),
	}

	grid := BuildGrid(seg, []float64{0, 150, 612}, DefaultConfig())
	assert.Equal(t, Grid{{"Name", "Age"}, {"Alice", "30"}}, grid)
}

func TestBuildGridMergesShortContinuation(t *testing.T) {
	bounds := []float64{0, 100, 200, 612}
	seg := []Row{
		row(100, tok("2024-01-03", 10, 100), tok("Coffee", 150, 100)),
		row(112, tok("4.50", 300, 112)),
	}

	grid := BuildGrid(seg, bounds, DefaultConfig())
	assert.Equal(t, Grid{{"2024-01-03", "Coffee", "4.50"}}, grid)
}

func TestBuildGridTwoNewColumnsStartNewRow(t *testing.T) {
	bounds := []float64{0, 100, 200, 612}
	seg := []Row{
		row(100, tok("a", 10, 100)),
		row(112, tok("b", 150, 112), tok("c", 300, 112)),
	}

	grid := BuildGrid(seg, bounds, DefaultConfig())
	assert.Equal(t, Grid{{"a", "", ""}, {"", "b", "c"}}, grid)
}

func TestBuildGridWrappedFilledColumn(t *testing.T) {
	bounds := []float64{0, 100, 200, 612}
	seg := []Row{
		row(100, tok("01/02", 10, 100), tok("Transfer", 110, 100), tok("12.00", 300, 100)),
		row(112, tok("ref", 110, 112), tok("8812", 140, 112)),
	}

	cfg := DefaultConfig()
	assert.Equal(t, Grid{{"01/02", "Transfer", "12.00"}, {"", "ref 8812", ""}}, BuildGrid(seg, bounds, cfg))

	cfg.MergeMode = MergeConcat
	assert.Equal(t, Grid{{"01/02", "Transfer ref 8812", "12.00"}}, BuildGrid(seg, bounds, cfg))
}

func TestBuildGridJoinsTokensLeftToRight(t *testing.T) {
	seg := []Row{row(100, tok("Smith", 60, 100), tok("John", 20, 100), tok(" ", 90, 100))}

	grid := BuildGrid(seg, []float64{0, 150, 612}, DefaultConfig())
	assert.Equal(t, Grid{{"John Smith", ""}}, grid)
}

func TestBuildGridOutOfRangeTokens(t *testing.T) {
	bounds := []float64{0, 100, 200}
	seg := []Row{
		row(100, tok("neg", -5, 100), tok("in", 120, 100)),
		row(130, tok("far", 250, 130), tok("x", 10, 130)),
	}

	cfg := DefaultConfig()
	assert.Equal(t, Grid{{"neg", "in"}, {"x", "far"}}, BuildGrid(seg, bounds, cfg))

	// With the outliers gone the second row only fills the column left
	// empty above it, so it folds into the first.
	cfg.DropOutOfRange = true
	assert.Equal(t, Grid{{"x", "in"}}, BuildGrid(seg, bounds, cfg))
}

func TestBuildGridUniformWidth(t *testing.T) {
	bounds := []float64{0, 40, 90, 160, 300, 612}
	seg := []Row{
		row(0, tok("a", 0, 0), tok("b", 50, 0), tok("c", 100, 0), tok("d", 500, 0)),
		row(15, tok("e", 45, 15)),
		row(30, tok("f", 0, 30), tok("g", 200, 30)),
		row(45, tok("h", 10, 45), tok("i", 11, 45), tok("j", 400, 45)),
	}

	grid := BuildGrid(seg, bounds, DefaultConfig())
	assert.NotEmpty(t, grid)
	for _, r := range grid {
		assert.Len(t, r, len(bounds)-1)
	}
}

func TestBuildGridSkipsBlankRowsAndBadBounds(t *testing.T) {
	bounds := []float64{0, 100, 200}
	seg := []Row{row(100, tok("far", 250, 100)), row(120, tok("a", 10, 120), tok("b", 110, 120))}

	cfg := DefaultConfig()
	cfg.DropOutOfRange = true
	assert.Equal(t, Grid{{"a", "b"}}, BuildGrid(seg, bounds, cfg))

	assert.Nil(t, BuildGrid(seg, []float64{0}, cfg))
	assert.Nil(t, BuildGrid(nil, bounds, cfg))
}
