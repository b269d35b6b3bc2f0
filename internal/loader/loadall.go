package loader

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/june-6th/docexpand/internal/doctree"
)

// LoadAll reads and parses the configured pages concurrently. The returned
// slice preserves the configured page order; expansion itself stays strictly
// sequential, only file I/O and parsing run in parallel.
func LoadAll(ctx context.Context, baseDir string, pages []string) ([]*doctree.Page, error) {
	out := make([]*doctree.Page, len(pages))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, rel := range pages {
		i, rel := i, rel
		g.Go(func() error {
			p, err := LoadFile(baseDir, rel)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
