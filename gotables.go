// Package gotables reconstructs tables from the positioned text of document
// pages and hands them to a sink, one named grid per detected table.
package gotables

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/brunobiangulo/gotables/parser"
	"github.com/brunobiangulo/gotables/table"
	"github.com/brunobiangulo/gotables/writer"
)

// Report summarizes one extraction run.
type Report struct {
	Pages        int           `json:"pages"`
	SkippedPages int           `json:"skipped_pages"`
	Tables       []table.Table `json:"tables"`
	Written      bool          `json:"written"` // false when no table qualified and the sink was not called
	Elapsed      time.Duration `json:"elapsed"`
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRegistry replaces the token sources used to open documents.
func WithRegistry(r *parser.Registry) Option {
	return func(e *Extractor) { e.sources = r }
}

// WithRowClusterer overrides the row clustering strategy chosen by the config.
func WithRowClusterer(rc table.RowClusterer) Option {
	return func(e *Extractor) { e.rows = rc }
}

// Extractor runs the table reconstruction pipeline over whole documents. It
// holds no per-document state and may be shared by concurrent callers.
type Extractor struct {
	cfg     Config
	tcfg    table.Config
	sources *parser.Registry
	rows    table.RowClusterer
	filter  *table.RowFilter
}

// New creates an Extractor with the given configuration.
func New(cfg Config, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{
		cfg:  cfg,
		tcfg: cfg.tableConfig(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.sources == nil {
		e.sources = parser.NewRegistry()
		e.sources.Register("pdf", &parser.PDFSource{WordGap: cfg.WordGap})
	}
	if e.rows == nil {
		rc, err := e.tcfg.Clusterer()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		e.rows = rc
	}
	e.filter = table.NewRowFilter(cfg.HeaderFooterKeywords)
	return e, nil
}

// Extract opens the document at path and returns every qualifying table in
// page order.
func (e *Extractor) Extract(ctx context.Context, path string) (*Report, error) {
	src, err := e.sources.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, parser.FormatOf(path))
	}
	doc, err := src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	defer doc.Close()

	slog.Info("extract: document opened", "file", filepath.Base(path), "pages", doc.NumPage())
	return e.ExtractDocument(ctx, doc)
}

// Convert extracts the tables of the document at in and writes them to
// sink. When no table qualifies the sink is not called and the returned
// report has Written set to false.
func (e *Extractor) Convert(ctx context.Context, in string, sink writer.Sink) (*Report, error) {
	rep, err := e.Extract(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(rep.Tables) == 0 {
		slog.Info("extract: no tables detected", "file", filepath.Base(in), "pages", rep.Pages)
		return rep, nil
	}
	if err := sink.Write(ctx, rep.Tables); err != nil {
		return rep, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	rep.Written = true
	return rep, nil
}

// pageResult is the outcome of analysing one page.
type pageResult struct {
	grids []table.Grid
	err   error
}

// ExtractDocument runs the pipeline over an already opened document.
// Pages are read one at a time in order; their geometry is analysed on up
// to Config.Concurrency goroutines. A page that fails is logged and skipped.
func (e *Extractor) ExtractDocument(ctx context.Context, doc parser.Document) (*Report, error) {
	start := time.Now()
	n := doc.NumPage()
	results := make([]pageResult, n)

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, e.cfg.Concurrency)
	)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		page, err := doc.Page(ctx, i+1)
		if err != nil {
			results[i].err = err
			continue
		}
		if err := e.checkText(page); err != nil {
			results[i].err = err
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, page *parser.Page) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.analysePage(page)
		}(i, page)
	}
	wg.Wait()

	rep := &Report{Pages: n}
	for i, r := range results {
		if r.err != nil {
			rep.SkippedPages++
			if errors.Is(r.err, ErrPageTooSparse) {
				slog.Debug("extract: page skipped", "page", i+1, "error", r.err)
			} else {
				slog.Warn("extract: page skipped", "page", i+1, "error", r.err)
			}
			continue
		}
		for k, g := range r.grids {
			rep.Tables = append(rep.Tables, table.Table{
				Name:  e.tableName(i+1, k, len(rep.Tables)),
				Page:  i + 1,
				Index: k,
				Grid:  g,
			})
		}
	}
	rep.Elapsed = time.Since(start)

	slog.Info("extract: document complete",
		"pages", rep.Pages, "skipped", rep.SkippedPages, "tables", len(rep.Tables),
		"elapsed", rep.Elapsed.Round(time.Millisecond))
	return rep, nil
}

// analysePage is pure given the page; panics are recovered so one bad page
// never takes the run down.
func (e *Extractor) analysePage(page *parser.Page) (res pageResult) {
	defer func() {
		if r := recover(); r != nil {
			res = pageResult{err: fmt.Errorf("page %d: %v", page.Number, r)}
		}
	}()

	grids, err := table.ExtractPage(page.Input(), e.rows, e.filter, e.tcfg)
	if err != nil {
		return pageResult{err: fmt.Errorf("page %d: %w", page.Number, err)}
	}
	slog.Debug("extract: page analysed", "page", page.Number, "tokens", len(page.Tokens), "tables", len(grids))
	return pageResult{grids: grids}
}

// checkText applies the cheap prefilter on the page's plain text.
func (e *Extractor) checkText(page *parser.Page) error {
	if n := cleanTextLen(page.RawText); n < e.cfg.MinPageTextLength {
		return fmt.Errorf("page %d: %w (%d < %d)", page.Number, ErrPageTooSparse, n, e.cfg.MinPageTextLength)
	}
	return nil
}

// cleanTextLen counts the runes of s after dropping everything but letters,
// digits and whitespace and trimming the ends.
func cleanTextLen(s string) int {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return len([]rune(strings.TrimSpace(clean)))
}

// tableName returns a stable name derived from the page number and the
// table's position, never from completion order.
func (e *Extractor) tableName(page, k, seen int) string {
	if e.cfg.NameStyle == NameTable {
		return fmt.Sprintf("Table_%d", seen+1)
	}
	if k == 0 {
		return fmt.Sprintf("Page_%d", page)
	}
	return fmt.Sprintf("Page_%d_%d", page, k+1)
}
