package symbols

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/june-6th/docexpand/internal/errs"
)

// LoadSQLite reads a symbol database from a SQLite file into a Store.
//
// Expected schema:
//
//	CREATE TABLE docs (
//	    module    TEXT NOT NULL,
//	    binding   TEXT NOT NULL,
//	    signature TEXT NOT NULL DEFAULT '',
//	    category  TEXT NOT NULL,
//	    exported  INTEGER NOT NULL,
//	    path      TEXT NOT NULL,
//	    text      TEXT NOT NULL
//	);
//
// Rows are consumed in rowid order so registration order, and with it
// autodiscovery enumeration order, is stable across runs.
func LoadSQLite(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "symbol database not found")
	}

	// mode=ro: the store is a read-only snapshot of the database.
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "open symbol database")
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx,
		`SELECT module, binding, signature, category, exported, path, text
		 FROM docs ORDER BY rowid`)
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "query symbol database")
	}
	defer rows.Close()

	store := NewStore()
	for rows.Next() {
		var module, binding, signature, category, docPath, text string
		var exported int
		if err := rows.Scan(&module, &binding, &signature, &category, &exported, &docPath, &text); err != nil {
			return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "scan symbol row")
		}
		cat, ok := ParseCategory(category)
		if !ok {
			return nil, errs.Fatal(errs.CategoryConfig,
				fmt.Sprintf("binding %s.%s: unknown category %q", module, binding, category))
		}
		store.AddBinding(module, binding, cat, exported != 0)
		if err := store.AddDoc(module, binding, signature, docPath, text); err != nil {
			return nil, errs.Wrap(err, errs.CategoryConfig, errs.SeverityFatal, "symbol database")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "read symbol database")
	}
	return store, nil
}
