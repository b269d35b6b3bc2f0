// Package config loads and validates the build configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/june-6th/docexpand/internal/errs"
)

// Config represents the application configuration.
type Config struct {
	// SourceDir is the directory the configured pages are read from.
	SourceDir string `yaml:"source_dir"`

	// OutputDir receives the rendered pages.
	OutputDir string `yaml:"output_dir"`

	// Pages lists the source pages in processing order, relative to
	// SourceDir.
	Pages []string `yaml:"pages"`

	// DefaultModule is the module context symbol references resolve against
	// when a page does not set CurrentModule.
	DefaultModule string `yaml:"default_module"`

	// Modules restricts "@docs" resolution to entries owned by the listed
	// modules. Empty means no restriction.
	Modules []string `yaml:"modules,omitempty"`

	Symbols SymbolsConfig `yaml:"symbols"`
}

// SymbolsConfig selects the symbol database source.
type SymbolsConfig struct {
	// Source is "yaml" or "sqlite".
	Source string `yaml:"source"`

	// Path is the database file path.
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file, applies environment overrides
// and defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "read configuration")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Wrap(err, errs.CategoryConfig, errs.SeverityFatal, "parse configuration")
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv applies DOCEXPAND_* environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("DOCEXPAND_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("DOCEXPAND_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("DOCEXPAND_SYMBOLS_PATH"); v != "" {
		c.Symbols.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "docs"
	}
	if c.OutputDir == "" {
		c.OutputDir = "site"
	}
	if c.Symbols.Source == "" {
		c.Symbols.Source = "yaml"
	}
}

// Validate checks the configuration for authoring mistakes.
func (c *Config) Validate() error {
	if len(c.Pages) == 0 {
		return errs.Fatal(errs.CategoryConfig, "no pages configured")
	}
	switch c.Symbols.Source {
	case "yaml", "sqlite":
	default:
		return errs.Fatal(errs.CategoryConfig,
			fmt.Sprintf("unknown symbols source %q (want yaml or sqlite)", c.Symbols.Source))
	}
	if c.Symbols.Path == "" {
		return errs.Fatal(errs.CategoryConfig, "symbols.path not configured")
	}
	return nil
}
