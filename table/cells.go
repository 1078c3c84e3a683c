package table

import "strings"

// Grid is a rectangular table of cell strings. Row 0 is the header.
type Grid [][]string

// Width returns the number of columns, or 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// BuildGrid lays the rows of one table segment onto the column intervals
// defined by bounds. A row that only fills columns left empty by the row
// above it is treated as the wrapped tail of a multi-line cell and folded
// into that row instead of starting a new one.
func BuildGrid(seg []Row, bounds []float64, cfg Config) Grid {
	n := len(bounds) - 1
	if n < 1 {
		return nil
	}

	var grid Grid
	var pending []string
	for _, r := range seg {
		cells := layRow(r, bounds, cfg.DropOutOfRange)
		if isBlank(cells) {
			continue
		}
		if pending != nil && continues(pending, cells, cfg) {
			mergeInto(pending, cells, cfg.MergeMode)
			continue
		}
		if pending != nil {
			grid = append(grid, pending)
		}
		pending = cells
	}
	if pending != nil {
		grid = append(grid, pending)
	}
	return grid
}

// layRow places each token of r into the first interval containing its left
// edge. Tokens left of the first seam or past the last one are clamped to
// the outer columns unless drop is set.
func layRow(r Row, bounds []float64, drop bool) []string {
	n := len(bounds) - 1
	parts := make([][]string, n)
	for _, t := range r.Sorted() {
		col := column(t.Left, bounds)
		if col < 0 {
			if drop {
				continue
			}
			col = 0
			if t.Left >= bounds[n] {
				col = n - 1
			}
		}
		parts[col] = append(parts[col], t.Text)
	}

	cells := make([]string, n)
	for i, p := range parts {
		cells[i] = strings.TrimSpace(strings.Join(p, " "))
	}
	return cells
}

func column(x float64, bounds []float64) int {
	for i := 0; i < len(bounds)-1; i++ {
		if bounds[i] <= x && x < bounds[i+1] {
			return i
		}
	}
	return -1
}

// continues reports whether cells is a continuation of prev.
func continues(prev, cells []string, cfg Config) bool {
	if cfg.MergeMode == MergeConcat {
		filled := 0
		for _, c := range cells {
			if c != "" {
				filled++
			}
		}
		return filled < cfg.ContinuationThreshold
	}

	newly, overlap := 0, 0
	for i, c := range cells {
		switch {
		case c == "":
		case prev[i] == "":
			newly++
		default:
			overlap++
		}
	}
	return newly > 0 && newly < cfg.ContinuationThreshold && overlap == 0
}

func mergeInto(prev, cells []string, mode string) {
	for i, c := range cells {
		switch {
		case c == "":
		case prev[i] == "":
			prev[i] = c
		case mode == MergeConcat:
			prev[i] += " " + c
		}
	}
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
