package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/brunobiangulo/gotables/table"
)

// DefaultWordGap is the widest horizontal gap, in points, between two glyphs
// of the same word.
const DefaultWordGap = 2.0

// baselineSlack is how far apart two glyph baselines may be and still share
// a text line.
const baselineSlack = 3.0

// ruleThickness is the thickest filled rectangle still read as a ruled line.
const ruleThickness = 1.0

// ErrPageMissing is returned for page numbers the document does not hold.
var ErrPageMissing = errors.New("parser: page missing")

// letter is used when a page carries no usable MediaBox.
var letter = box{x0: 0, y0: 0, x1: 612, y1: 792}

// PDFSource extracts word tokens and ruled lines from PDF files.
type PDFSource struct {
	WordGap float64
}

func (s *PDFSource) SupportedFormats() []string { return []string{"pdf"} }

func (s *PDFSource) Open(ctx context.Context, path string) (Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	gap := s.WordGap
	if gap <= 0 {
		gap = DefaultWordGap
	}
	return &pdfDocument{f: f, reader: reader, wordGap: gap}, nil
}

type pdfDocument struct {
	f       *os.File
	reader  *pdf.Reader
	wordGap float64
}

func (d *pdfDocument) NumPage() int { return d.reader.NumPage() }

func (d *pdfDocument) Close() error { return d.f.Close() }

// Page decodes page n. The content stream interpreter panics on some
// malformed input, so panics are turned into errors for this page only.
func (d *pdfDocument) Page(ctx context.Context, n int) (p *Page, err error) {
	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d: %w", n, ErrPageMissing)
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("page %d: malformed content: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w", n, ErrPageMissing)
	}

	b := mediaBox(page.V)
	content := page.Content()
	tokens := groupGlyphs(content.Text, b, d.wordGap)

	text, err := page.GetPlainText(nil)
	if err != nil {
		slog.Debug("pdf: plain text extraction failed, using tokens", "page", n, "error", err)
		text = joinTokens(tokens)
	}

	return &Page{
		Number:  n,
		Width:   b.width(),
		Height:  b.height(),
		Tokens:  tokens,
		Lines:   rules(content.Rect, b),
		RawText: text,
	}, nil
}

type box struct{ x0, y0, x1, y1 float64 }

func (b box) width() float64  { return b.x1 - b.x0 }
func (b box) height() float64 { return b.y1 - b.y0 }

// mediaBox resolves the page's MediaBox, following Parent links for
// inherited values.
func mediaBox(v pdf.Value) box {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == pdf.Array && mb.Len() == 4 {
			b := box{
				x0: math.Min(mb.Index(0).Float64(), mb.Index(2).Float64()),
				y0: math.Min(mb.Index(1).Float64(), mb.Index(3).Float64()),
				x1: math.Max(mb.Index(0).Float64(), mb.Index(2).Float64()),
				y1: math.Max(mb.Index(1).Float64(), mb.Index(3).Float64()),
			}
			if b.width() > 0 && b.height() > 0 {
				return b
			}
		}
		v = v.Key("Parent")
	}
	return letter
}

// groupGlyphs turns positioned glyphs into word tokens. Glyphs are first
// gathered into text lines by baseline, then runs of glyphs on a line that
// are no more than gap apart are joined into one word. Whitespace glyphs end
// a word. Coordinates are flipped so that y grows down from the top of b.
func groupGlyphs(glyphs []pdf.Text, b box, gap float64) []table.Token {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines [][]pdf.Text
	var cur []pdf.Text
	for _, g := range sorted {
		if len(cur) > 0 && cur[0].Y-g.Y > baselineSlack {
			lines = append(lines, cur)
			cur = nil
		}
		cur = append(cur, g)
	}
	lines = append(lines, cur)

	var tokens []table.Token
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

		var word []pdf.Text
		var right float64
		flush := func() {
			if len(word) == 0 {
				return
			}
			if t, ok := wordToken(word, b); ok {
				tokens = append(tokens, t)
			}
			word = nil
		}
		for _, g := range line {
			if strings.TrimFunc(g.S, unicode.IsSpace) == "" {
				flush()
				continue
			}
			if len(word) > 0 && g.X-right > gap {
				flush()
			}
			word = append(word, g)
			right = g.X + g.W
		}
		flush()
	}
	return tokens
}

func wordToken(word []pdf.Text, b box) (table.Token, bool) {
	var sb strings.Builder
	left, right := math.Inf(1), math.Inf(-1)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range word {
		sb.WriteString(g.S)
		left = math.Min(left, g.X)
		right = math.Max(right, g.X+g.W)
		lo = math.Min(lo, g.Y)
		hi = math.Max(hi, g.Y+g.FontSize)
	}

	t := table.Token{
		Text:   norm.NFC.String(strings.TrimSpace(sb.String())),
		Left:   left - b.x0,
		Right:  right - b.x0,
		Top:    b.y1 - hi,
		Bottom: b.y1 - lo,
	}
	if err := t.Validate(); err != nil {
		slog.Debug("pdf: dropping token", "error", err)
		return table.Token{}, false
	}
	return t, true
}

// rules keeps the thin filled rectangles of a page, which is how most
// producers draw table rules, and collapses each to its centre line.
func rules(rects []pdf.Rect, b box) []table.Line {
	var lines []table.Line
	for _, r := range rects {
		x0, x1 := math.Min(r.Min.X, r.Max.X)-b.x0, math.Max(r.Min.X, r.Max.X)-b.x0
		top, bottom := b.y1-math.Max(r.Min.Y, r.Max.Y), b.y1-math.Min(r.Min.Y, r.Max.Y)

		switch {
		case x1-x0 <= ruleThickness && bottom-top > x1-x0:
			mid := (x0 + x1) / 2
			lines = append(lines, table.Line{X0: mid, X1: mid, Top: top, Bottom: bottom})
		case bottom-top <= ruleThickness:
			mid := (top + bottom) / 2
			lines = append(lines, table.Line{X0: x0, X1: x1, Top: mid, Bottom: mid})
		}
	}
	return lines
}

func joinTokens(tokens []table.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
