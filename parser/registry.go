package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Registry struct {
	sources map[string]Source
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]Source)}
	// Register built-in sources
	for _, s := range []Source{&PDFSource{WordGap: DefaultWordGap}} {
		for _, f := range s.SupportedFormats() {
			r.sources[f] = s
		}
	}
	return r
}

func (r *Registry) Get(format string) (Source, error) {
	s, ok := r.sources[format]
	if !ok {
		return nil, fmt.Errorf("no source for format: %s", format)
	}
	return s, nil
}

// ForPath looks up the source by the file extension of path.
func (r *Registry) ForPath(path string) (Source, error) {
	return r.Get(FormatOf(path))
}

func (r *Registry) Register(format string, s Source) {
	r.sources[format] = s
}

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
