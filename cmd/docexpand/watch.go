package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/june-6th/docexpand/internal/config"
)

// debounceWindow coalesces editor save bursts into one rebuild.
const debounceWindow = 300 * time.Millisecond

// runWatch rebuilds whenever a markdown source changes. Each run is a full
// expansion; build state never carries over, so registries stay consistent
// with the sources on disk.
func runWatch(ctx context.Context, cfg *config.Config) error {
	if err := runBuild(ctx, cfg); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.SourceDir); err != nil {
		return err
	}
	slog.Info("Watching for changes", "dir", cfg.SourceDir)

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-rebuild:
			slog.Info("Source changed, rebuilding")
			if err := runBuild(ctx, cfg); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}
