package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Token is a run of text with its bounding box in page coordinates. The
// origin is the top-left corner of the page and y grows downwards.
type Token struct {
	Text   string  `json:"text"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Height returns the vertical extent of the token's box.
func (t Token) Height() float64 { return t.Bottom - t.Top }

// Validate reports whether the token has the required fields with sane
// geometry.
func (t Token) Validate() error {
	if t.Text == "" {
		return errors.New("token: empty text")
	}
	for _, v := range []float64{t.Left, t.Right, t.Top, t.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("token %q: non-finite coordinate", t.Text)
		}
	}
	if t.Right < t.Left {
		return fmt.Errorf("token %q: right %.2f before left %.2f", t.Text, t.Right, t.Left)
	}
	if t.Bottom < t.Top {
		return fmt.Errorf("token %q: bottom %.2f above top %.2f", t.Text, t.Bottom, t.Top)
	}
	return nil
}

// Line is a ruled segment drawn on the page.
type Line struct {
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// verticalSlack is the widest horizontal extent still treated as a vertical rule.
const verticalSlack = 1.0

// Height returns the vertical extent of the segment.
func (l Line) Height() float64 { return l.Bottom - l.Top }

// Vertical reports whether the segment is a vertical rule.
func (l Line) Vertical() bool {
	return math.Abs(l.X1-l.X0) <= verticalSlack && l.Height() > 0
}

// Row is a group of tokens judged to sit on the same visual line. Y is the
// representative vertical position of the band.
type Row struct {
	Y      float64
	Tokens []Token
}

// Sorted returns the row's tokens ordered left to right. The row itself is
// not modified.
func (r Row) Sorted() []Token {
	out := make([]Token, len(r.Tokens))
	copy(out, r.Tokens)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Left < out[j].Left })
	return out
}
