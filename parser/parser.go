package parser

import (
	"context"

	"github.com/brunobiangulo/gotables/table"
)

// Page is the geometry a source extracts from one document page.
type Page struct {
	Number  int           // 1-based page index
	Width   float64       // page width in points
	Height  float64       // page height in points
	Tokens  []table.Token // words with boxes, origin top-left
	Lines   []table.Line  // ruled segments, same coordinate space
	RawText string        // plain text, used for the sparse-page prefilter
}

// Input returns the page geometry in the form the table package consumes.
func (p *Page) Input() table.PageInput {
	return table.PageInput{
		Tokens: p.Tokens,
		Lines:  p.Lines,
		Width:  p.Width,
		Height: p.Height,
	}
}

// Document is an opened source document. Implementations need not be safe
// for concurrent use.
type Document interface {
	NumPage() int
	Page(ctx context.Context, n int) (*Page, error)
	Close() error
}

// Source opens documents of one or more formats.
type Source interface {
	Open(ctx context.Context, path string) (Document, error)
	SupportedFormats() []string
}
