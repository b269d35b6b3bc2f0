// Package expand implements the directive-expansion stage of the build: a
// priority-ordered dispatch pipeline that rewrites recognized directive
// blocks into resolved documentation nodes, evaluated code results, and
// generated index/contents nodes.
package expand

import (
	"fmt"
	"log/slog"

	"github.com/june-6th/docexpand/internal/anchors"
	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/sandbox"
	"github.com/june-6th/docexpand/internal/symbols"
)

// Page metadata keys written by "@meta" blocks and read by later stages.
const (
	// MetaCurrentModule overrides the module context symbol references
	// resolve against for the rest of the page.
	MetaCurrentModule = "CurrentModule"
)

// Warning is a recoverable issue surfaced during expansion, attributable to
// a page and source location. The build completes despite warnings.
type Warning struct {
	Page    string // page source path
	Line    int    // 1-based source line of the offending block
	Source  string // offending source text (symbol reference, expression)
	Message string
}

func (w Warning) String() string {
	if w.Source != "" {
		return fmt.Sprintf("%s:%d: %s: %s", w.Page, w.Line, w.Message, w.Source)
	}
	return fmt.Sprintf("%s:%d: %s", w.Page, w.Line, w.Message)
}

// Options configures a Document.
type Options struct {
	// DefaultModule is the module context used when a page does not set
	// CurrentModule.
	DefaultModule string

	// ModuleFilter restricts "@docs" resolution to entries owned by the
	// listed modules. Empty means no restriction.
	ModuleFilter []string
}

// Document is the build-wide expansion context: the anchor and object
// registries, generated node lists, and collected warnings. It is passed
// explicitly into every stage; there is no ambient global state.
type Document struct {
	Backend   symbols.Backend
	Anchors   *anchors.Registry
	Sandboxes *sandbox.Manager
	Options   Options

	// Objects enforces "each symbol documented at most once per build".
	Objects map[symbols.Identity]*doctree.Docs

	// DocsOrder records identities per binding in discovery order, so later
	// references can enumerate every documented overload of a name.
	DocsOrder map[symbols.Binding][]symbols.Identity

	// DocsList holds every registered docs node in registration order.
	DocsList []*doctree.Docs

	// Headers holds every tracked header in allocation order.
	Headers []doctree.ContentsEntry

	// Generated collects index/contents nodes for the later cross-reference
	// pass, in creation order.
	Generated []doctree.Node

	// Pages lists every page expanded so far, in processing order.
	Pages []*doctree.Page

	Warnings []Warning

	stages []Stage
}

// NewDocument creates a build context with the default stage pipeline.
func NewDocument(backend symbols.Backend, opts Options) *Document {
	d := &Document{
		Backend:   backend,
		Anchors:   anchors.NewRegistry(),
		Sandboxes: sandbox.NewManager(),
		Options:   opts,
		Objects:   make(map[symbols.Identity]*doctree.Docs),
		DocsOrder: make(map[symbols.Binding][]symbols.Identity),
	}
	d.stages = defaultStages()
	return d
}

// Warn records a recoverable issue and logs it.
func (d *Document) Warn(p *doctree.Page, b *doctree.Block, source, message string) {
	w := Warning{Page: p.Source, Source: source, Message: message}
	if b != nil {
		w.Line = b.Line
	}
	d.Warnings = append(d.Warnings, w)
	slog.Warn(message, "page", w.Page, "line", w.Line, "source", source)
}

// currentModule resolves the active module context for a page.
func (d *Document) currentModule(p *doctree.Page) string {
	if v, ok := p.Meta[MetaCurrentModule].(string); ok && v != "" {
		return v
	}
	return d.Options.DefaultModule
}

// register stores a docs node under its identity. The caller must have
// checked for duplicates first.
func (d *Document) register(node *doctree.Docs) {
	d.Objects[node.Identity] = node
	d.DocsOrder[node.Identity.Binding] = append(d.DocsOrder[node.Identity.Binding], node.Identity)
	d.DocsList = append(d.DocsList, node)
}
