package expand

import (
	"fmt"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/util/sets"
)

// defaultContentsDepth bounds generated outlines when the directive does not
// configure one.
const defaultContentsDepth = 2

// runIndex records an "@index" block: a flat list of every documented symbol
// whose owning page is in the allowed set. The node is appended to the
// document-global generated list and populated during finalization, once
// every page's registrations exist.
func runIndex(d *Document, p *doctree.Page, b *doctree.Block) error {
	settings, parseErrs := parseAssignments(b.Literal)
	for _, err := range parseErrs {
		d.Warn(p, b, "", fmt.Sprintf("invalid @index assignment: %v", err))
	}

	node := &doctree.Index{Pages: stringList(settings, "Pages")}
	d.Generated = append(d.Generated, node)
	p.Mapping[b] = node
	return nil
}

// runContents records an "@contents" block: a nested outline of header
// anchors up to the configured depth, restricted to the allowed page set.
func runContents(d *Document, p *doctree.Page, b *doctree.Block) error {
	settings, parseErrs := parseAssignments(b.Literal)
	for _, err := range parseErrs {
		d.Warn(p, b, "", fmt.Sprintf("invalid @contents assignment: %v", err))
	}

	node := &doctree.Contents{
		Pages: stringList(settings, "Pages"),
		Depth: intOr(settings, "Depth", defaultContentsDepth),
	}
	d.Generated = append(d.Generated, node)
	p.Mapping[b] = node
	return nil
}

// Finalize populates every generated index and contents node from the full
// registries. Called once after all pages have been expanded, so indices on
// early pages also reference symbols documented on later ones.
func (d *Document) Finalize() {
	for _, g := range d.Generated {
		switch node := g.(type) {
		case *doctree.Index:
			allowed := sets.New(node.Pages...)
			node.Entries = nil
			for _, docs := range d.DocsList {
				if pageAllowed(allowed, node.Pages, docs.Page) {
					node.Entries = append(node.Entries, docs)
				}
			}
		case *doctree.Contents:
			allowed := sets.New(node.Pages...)
			node.Entries = nil
			for _, h := range d.Headers {
				if h.Level <= node.Depth && pageAllowed(allowed, node.Pages, h.Anchor.Page) {
					node.Entries = append(node.Entries, h)
				}
			}
		}
	}
}

// pageAllowed reports whether a page destination is in the allow-list.
// An empty list allows every page; listed names match exactly or as path
// suffixes so configurations can name bare files.
func pageAllowed(allowed sets.Set[string], pages []string, dest string) bool {
	if len(pages) == 0 {
		return true
	}
	if allowed.Has(dest) {
		return true
	}
	for _, pg := range pages {
		if strings.HasSuffix(dest, pg) {
			return true
		}
	}
	return false
}
