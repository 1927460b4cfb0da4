// Package config provides configuration management for the hierarchy
// inspector.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/pbehr/axscope/internal/treecache"
)

// Config holds the application configuration.
type Config struct {
	// Target options: a hierarchy document, a directory tree, or the
	// built-in sample when both are empty.
	Document  string `json:"document,omitempty"`
	Directory string `json:"directory,omitempty"`

	// UI options
	Terminology string `json:"terminology"`
	Theme       string `json:"theme"` // "dark", "light"
	InitialView string `json:"initial_view"`

	// Output options: a non-empty format exports a snapshot of the
	// hierarchy instead of starting the TUI.
	OutputFormat string `json:"output_format,omitempty"` // "json", "text"
	OutputFile   string `json:"output_file,omitempty"`
	ExportDepth  int    `json:"export_depth"`

	// Debug options
	Verbose bool   `json:"verbose"`
	LogFile string `json:"log_file,omitempty"`
}

// NewConfig creates a new configuration with default values.
func NewConfig() *Config {
	return &Config{
		Terminology: "natural",
		Theme:       "dark",
		InitialView: "column",
		ExportDepth: 3,
		Verbose:     false,
	}
}

// ParseFlags parses command line flags from args (without the program name)
// and updates the config.
func (c *Config) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("axscope", flag.ContinueOnError)

	fs.StringVarP(&c.Document, "document", "d", c.Document, "Hierarchy document (JSON file) to browse")
	fs.StringVarP(&c.Directory, "fs", "f", c.Directory, "Directory tree to browse")
	fs.StringVarP(&c.Terminology, "terminology", "t", c.Terminology, "Description terminology (natural, raw, accessibility, applescript, javascript, objc)")
	fs.StringVar(&c.Theme, "theme", c.Theme, "Color theme (dark, light)")
	fs.StringVar(&c.InitialView, "view", c.InitialView, "Initial view (column, tree, list)")
	fs.StringVarP(&c.OutputFormat, "format", "o", c.OutputFormat, "Export format instead of the TUI (json, text)")
	fs.StringVar(&c.OutputFile, "output", c.OutputFile, "Export file (defaults to stdout)")
	fs.IntVar(&c.ExportDepth, "depth", c.ExportDepth, "Levels to populate for an export")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Verbose logging")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "Log file (defaults to discarding logs in TUI mode)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.Validate()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Document != "" && c.Directory != "" {
		return fmt.Errorf("only one of --document and --fs may be given")
	}

	if c.Document != "" {
		abs, err := filepath.Abs(c.Document)
		if err != nil {
			return fmt.Errorf("invalid document path %s: %w", c.Document, err)
		}
		c.Document = abs
		if _, err := os.Stat(c.Document); os.IsNotExist(err) {
			return fmt.Errorf("document does not exist: %s", c.Document)
		}
	}

	if c.Directory != "" {
		abs, err := filepath.Abs(c.Directory)
		if err != nil {
			return fmt.Errorf("invalid directory %s: %w", c.Directory, err)
		}
		c.Directory = abs
	}

	if _, err := treecache.ParseTerminology(c.Terminology); err != nil {
		return err
	}

	validThemes := map[string]bool{"dark": true, "light": true}
	if !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme: %s (valid: dark, light)", c.Theme)
	}

	validViews := map[string]bool{"column": true, "tree": true, "list": true}
	if !validViews[c.InitialView] {
		return fmt.Errorf("invalid view: %s (valid: column, tree, list)", c.InitialView)
	}

	if c.OutputFormat != "" {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.OutputFormat)] {
			return fmt.Errorf("invalid output format: %s (valid: json, text)", c.OutputFormat)
		}
		c.OutputFormat = strings.ToLower(c.OutputFormat)
	}

	if c.ExportDepth < 1 {
		return fmt.Errorf("export depth must be at least 1")
	}

	return nil
}

// TerminologyMode returns the parsed terminology. Validate must have
// accepted the config first.
func (c *Config) TerminologyMode() treecache.Terminology {
	t, err := treecache.ParseTerminology(c.Terminology)
	if err != nil {
		return treecache.TermNatural
	}
	return t
}
