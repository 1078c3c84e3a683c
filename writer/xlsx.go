// Package writer persists extracted tables.
package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/gotables/table"
)

// Sink receives the tables of one document, in order.
type Sink interface {
	Write(ctx context.Context, tables []table.Table) error
}

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// XLSXSink writes one worksheet per table to a workbook at Path. The first
// grid row becomes a bold, frozen header row.
type XLSXSink struct {
	Path string
}

// Write implements Sink.
func (s *XLSXSink) Write(ctx context.Context, tables []table.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	names := SheetNames(tables)
	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %q: %w", name, err)
		}
		if err := writeGrid(f, name, t.Grid, header); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("saving XLSX: %w", err)
	}
	return nil
}

func writeGrid(f *excelize.File, sheet string, g table.Grid, headerStyle int) error {
	for r, row := range g {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	if len(g) == 0 {
		return nil
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// SheetNames returns a valid, unique worksheet name for every table, in
// order. Characters Excel rejects are dropped and names are cut to 31
// characters; clashes get a numeric suffix.
func SheetNames(tables []table.Table) []string {
	used := make(map[string]bool, len(tables))
	out := make([]string, len(tables))
	for i, t := range tables {
		base := sanitize(t.Name)
		if base == "" {
			base = fmt.Sprintf("Table_%d", i+1)
		}
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf("_%d", n)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	return truncate(name, maxSheetName)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
