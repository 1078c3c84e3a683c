package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// RowFilter drops page boilerplate such as running headers, footers and
// totals. A row is dropped when its joined, lower-cased text contains any
// keyword as a substring.
type RowFilter struct {
	keywords []string
}

// NewRowFilter returns a filter for the given keywords. Empty keywords are
// ignored.
func NewRowFilter(keywords []string) *RowFilter {
	lower := cases.Lower(language.Und)
	f := &RowFilter{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		f.keywords = append(f.keywords, lower.String(norm.NFC.String(k)))
	}
	return f
}

// Keywords returns the normalized keyword list.
func (f *RowFilter) Keywords() []string {
	return append([]string(nil), f.keywords...)
}

// Match reports whether the row is boilerplate.
func (f *RowFilter) Match(row []string) bool {
	if len(f.keywords) == 0 {
		return false
	}
	// Casers carry state and are not safe for concurrent use.
	text := cases.Lower(language.Und).String(norm.NFC.String(strings.Join(row, " ")))
	for _, k := range f.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Apply returns the rows of g that do not match. g is not modified.
func (f *RowFilter) Apply(g Grid) Grid {
	var out Grid
	for _, row := range g {
		if !f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}
