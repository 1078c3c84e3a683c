// Command gotables extracts the tables of a PDF into an XLSX workbook, one
// worksheet per table.
//
// Usage:
//
//	gotables [-config tables.yaml] [-v] statement.pdf statement.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/brunobiangulo/gotables"
	"github.com/brunobiangulo/gotables/writer"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON or YAML)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.pdf> <output.xlsx>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := gotables.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = gotables.LoadConfig(*configPath); err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
	}
	applyEnv(&cfg)

	ex, err := gotables.New(cfg)
	if err != nil {
		slog.Error("creating extractor", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := ex.Convert(ctx, in, &writer.XLSXSink{Path: out})
	if err != nil {
		slog.Error("extracting tables", "input", in, "error", err)
		os.Exit(1)
	}
	if !rep.Written {
		fmt.Println("No tables detected.")
		return
	}
	fmt.Printf("Success! %d tables from %d pages saved to %s\n", len(rep.Tables), rep.Pages, out)
}

// applyEnv overrides config values from GOTABLES_* environment variables.
func applyEnv(cfg *gotables.Config) {
	if v := os.Getenv("GOTABLES_KEYWORDS"); v != "" {
		var kws []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kws = append(kws, k)
			}
		}
		cfg.HeaderFooterKeywords = kws
	}
	if v := os.Getenv("GOTABLES_ROW_STRATEGY"); v != "" {
		cfg.RowStrategy = v
	}
	if v := os.Getenv("GOTABLES_COLUMN_STRATEGY"); v != "" {
		cfg.ColumnStrategy = v
	}
	if v := os.Getenv("GOTABLES_MIN_PAGE_TEXT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinPageTextLength = n
		} else {
			slog.Warn("ignoring GOTABLES_MIN_PAGE_TEXT_LENGTH", "value", v, "error", err)
		}
	}
	if v := os.Getenv("GOTABLES_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		} else {
			slog.Warn("ignoring GOTABLES_CONCURRENCY", "value", v, "error", err)
		}
	}
}
