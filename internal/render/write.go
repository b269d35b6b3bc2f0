package render

import (
	"os"
	"path/filepath"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/errs"
)

// WriteAll renders every page under outDir, preserving each page's
// destination path.
func WriteAll(outDir string, pages []*doctree.Page) error {
	for _, p := range pages {
		dest := filepath.Join(outDir, filepath.FromSlash(p.Dest))
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "create output directory")
		}
		f, err := os.Create(dest)
		if err != nil {
			return errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "create output file")
		}
		if err := Page(f, p); err != nil {
			f.Close()
			return errs.Wrap(err, errs.CategoryInternal, errs.SeverityFatal, "render page")
		}
		if err := f.Close(); err != nil {
			return errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "write output file")
		}
	}
	return nil
}
