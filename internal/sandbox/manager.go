package sandbox

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/june-6th/docexpand/internal/doctree"
)

// metaKeyPrefix reserves a key space in page metadata for cached contexts.
const metaKeyPrefix = "sandbox:"

// Manager creates and caches evaluation contexts per page. Contexts live in
// the page's metadata map, so resetting page metadata at the start of its
// expansion discards them and no state survives across pages.
type Manager struct{}

// NewManager creates a sandbox manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetOrCreate returns the context cached under name on page, creating it on
// first use. An empty name draws a fresh unique name, so unnamed blocks get
// isolated contexts.
func (m *Manager) GetOrCreate(page *doctree.Page, name string) *Context {
	if name == "" {
		name = uuid.NewString()
	}
	key := metaKeyPrefix + name
	if v, ok := page.Meta[key]; ok {
		if ctx, ok := v.(*Context); ok {
			return ctx
		}
		// A meta assignment shadowed the reserved key space; replace it.
		slog.Warn("sandbox name collides with page metadata", "page", page.Source, "name", name)
	}
	ctx := newContext(name)
	page.Meta[key] = ctx
	return ctx
}
