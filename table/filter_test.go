package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowFilterDropsKeywordRows(t *testing.T) {
	f := NewRowFilter(DefaultKeywords())
	grid := Grid{
		{"Item", "Amount"},
		{"Coffee", "4.50"},
		{"Grand Total", "4.50"},
		{"", "Page 1 of 3"},
	}

	assert.Equal(t, Grid{{"Item", "Amount"}, {"Coffee", "4.50"}}, f.Apply(grid))
	assert.Len(t, grid, 4)
}

func TestRowFilterSubstringMatch(t *testing.T) {
	f := NewRowFilter([]string{"page"})

	assert.True(t, f.Match([]string{"Homepage visits"}))
	assert.True(t, f.Match([]string{"PAGES"}))
	assert.False(t, f.Match([]string{"pa", "ge"}))
	assert.False(t, f.Match([]string{"Paging"}))
}

func TestRowFilterCaseFolding(t *testing.T) {
	f := NewRowFilter([]string{"  ÉTAT ", "", "Date"})

	assert.Equal(t, []string{"état", "date"}, f.Keywords())
	assert.True(t, f.Match([]string{"État du compte"}))
	assert.True(t, f.Match([]string{"VALUE DATE"}))
}

func TestRowFilterIdempotent(t *testing.T) {
	f := NewRowFilter(DefaultKeywords())
	grid := Grid{
		{"Branch: Main St", ""},
		{"Name", "Qty"},
		{"Bolts", "12"},
		{"Account no 1234", ""},
		{"Nuts", "40"},
	}

	once := f.Apply(grid)
	assert.Equal(t, once, f.Apply(once))
	assert.Equal(t, Grid{{"Name", "Qty"}, {"Bolts", "12"}, {"Nuts", "40"}}, once)
}

func TestRowFilterWithoutKeywords(t *testing.T) {
	f := NewRowFilter(nil)
	grid := Grid{{"page"}, {"total"}}
	assert.Equal(t, grid, f.Apply(grid))
}
