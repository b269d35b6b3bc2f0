// Command docexpand runs the directive-expansion stage of a documentation
// build: it loads the configured pages, expands directive blocks against a
// symbol database, and renders the expanded pages as markdown.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/june-6th/docexpand/internal/config"
	"github.com/june-6th/docexpand/internal/expand"
	"github.com/june-6th/docexpand/internal/loader"
	"github.com/june-6th/docexpand/internal/render"
	"github.com/june-6th/docexpand/internal/symbols"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docexpand.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Output directory override"`
	} `cmd:"" help:"Expand all configured pages and render them"`

	Check struct {
		Strict bool `help:"Exit non-zero if any warnings were produced"`
	} `cmd:"" help:"Expand without writing output and report warnings"`

	Watch struct {
		Output string `short:"o" help:"Output directory override"`
	} `cmd:"" help:"Rebuild whenever a source page changes"`
}

func main() {
	// Optional .env for DOCEXPAND_* overrides.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	switch kctx.Command() {
	case "build":
		if CLI.Build.Output != "" {
			cfg.OutputDir = CLI.Build.Output
		}
		if err := runBuild(ctx, cfg); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "check":
		warnings, err := runCheck(ctx, cfg)
		if err != nil {
			slog.Error("Check failed", "error", err)
			os.Exit(1)
		}
		if CLI.Check.Strict && warnings > 0 {
			os.Exit(1)
		}
	case "watch":
		if CLI.Watch.Output != "" {
			cfg.OutputDir = CLI.Watch.Output
		}
		if err := runWatch(ctx, cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	default:
		panic(kctx.Command())
	}
}

// loadBackend opens the configured symbol database.
func loadBackend(ctx context.Context, cfg *config.Config) (symbols.Backend, error) {
	switch cfg.Symbols.Source {
	case "sqlite":
		return symbols.LoadSQLite(ctx, cfg.Symbols.Path)
	default:
		return symbols.LoadYAML(cfg.Symbols.Path)
	}
}

// expandAll runs the full expansion over the configured pages and returns
// the populated build context.
func expandAll(ctx context.Context, cfg *config.Config) (*expand.Document, error) {
	backend, err := loadBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pages, err := loader.LoadAll(ctx, cfg.SourceDir, cfg.Pages)
	if err != nil {
		return nil, err
	}

	doc := expand.NewDocument(backend, expand.Options{
		DefaultModule: cfg.DefaultModule,
		ModuleFilter:  cfg.Modules,
	})
	if err := doc.ExpandAll(pages); err != nil {
		return nil, err
	}
	return doc, nil
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	doc, err := expandAll(ctx, cfg)
	if err != nil {
		return err
	}
	reportWarnings(doc)
	if err := render.WriteAll(cfg.OutputDir, doc.Pages); err != nil {
		return err
	}
	slog.Info("Build complete",
		"pages", len(doc.Pages),
		"symbols", len(doc.DocsList),
		"warnings", len(doc.Warnings))
	return nil
}

func runCheck(ctx context.Context, cfg *config.Config) (int, error) {
	doc, err := expandAll(ctx, cfg)
	if err != nil {
		return 0, err
	}
	reportWarnings(doc)
	slog.Info("Check complete", "pages", len(doc.Pages), "warnings", len(doc.Warnings))
	return len(doc.Warnings), nil
}

// reportWarnings prints every recoverable issue with its page and source
// attribution.
func reportWarnings(doc *expand.Document) {
	for _, w := range doc.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}
