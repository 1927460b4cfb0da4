// Command axscope is a terminal inspector for element hierarchies. It browses
// a target hierarchy (a JSON document, a directory tree, or a built-in
// sample) through three synchronized presentations backed by one lazily
// populated tree cache, or exports a snapshot of the hierarchy instead.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pbehr/axscope/internal/config"
	"github.com/pbehr/axscope/internal/hierarchy"
	"github.com/pbehr/axscope/internal/output"
	"github.com/pbehr/axscope/internal/treecache"
	"github.com/pbehr/axscope/internal/tui"
	"github.com/pbehr/axscope/internal/tui/theme"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "axscope: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.NewConfig()
	if err := cfg.ParseFlags(args); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	provider, rootRef, err := newProvider(cfg)
	if err != nil {
		return err
	}

	root, err := provider.Validate(rootRef)
	if err != nil {
		return fmt.Errorf("target validation failed: %w", err)
	}

	cache := treecache.New(provider, logger)
	cache.SetTerminology(cfg.TerminologyMode())
	cache.Seed(root)

	if cfg.OutputFormat != "" {
		return runExport(cfg, cache)
	}
	return runTUI(cfg, cache, logger)
}

// newProvider picks the hierarchy source from the config: an explicit JSON
// document, a directory tree, or the built-in sample document.
func newProvider(cfg *config.Config) (hierarchy.Provider, hierarchy.ElementRef, error) {
	switch {
	case cfg.Document != "":
		p, err := hierarchy.NewJSONFileProvider(cfg.Document)
		if err != nil {
			return nil, "", err
		}
		return p, hierarchy.RootRef, nil

	case cfg.Directory != "":
		return hierarchy.NewFSDirProvider(), hierarchy.ElementRef(cfg.Directory), nil

	default:
		p, err := hierarchy.NewJSONDocProvider(hierarchy.SampleDocument)
		if err != nil {
			return nil, "", err
		}
		return p, hierarchy.RootRef, nil
	}
}

// newLogger builds the application logger. In TUI mode logs must not write
// to the terminal, so without a log file they are discarded.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeLog := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	case cfg.OutputFormat != "":
		// Export mode owns stdout; logs go to stderr.
		w = os.Stderr
	default:
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func runExport(cfg *config.Config, cache *treecache.Cache) error {
	exporter := output.NewExporter(cache)
	exporter.PopulateToDepth(cfg.ExportDepth)

	w := io.Writer(os.Stdout)
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return exporter.Export(cfg.OutputFormat, w)
}

func runTUI(cfg *config.Config, cache *treecache.Cache, logger *slog.Logger) error {
	styles := tui.NewStyleManager(theme.ByName(cfg.Theme))
	app := tui.NewTUI(logger, styles)
	state := tui.NewState(cache, cfg.InitialView)
	return app.Run(state)
}
