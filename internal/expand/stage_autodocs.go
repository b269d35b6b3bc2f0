package expand

import (
	"fmt"
	"sort"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/symbols"
)

// autoEntry is one autodiscovered documentation candidate with its sort keys
// precomputed.
type autoEntry struct {
	moduleIdx   int    // position of the owning module in Modules
	exported    bool   // exported sorts before unexported
	pageIdx     int    // position of the matched page in Pages; len(Pages) if unmatched
	path        string // raw source path, tie-break when no page matched
	categoryIdx int    // position of the category in Order
	fullName    string // fully-qualified symbol name, final tie-break

	identity symbols.Identity
	entry    symbols.DocEntry
}

// runAutoDocs scans whole modules for documented bindings matching the
// block's filter configuration, sorts them with the five-key comparator, and
// registers each one. Unlike "@docs", per-entry duplicates are individually
// skipped and never fail the block.
func runAutoDocs(d *Document, p *doctree.Page, b *doctree.Block) error {
	settings, parseErrs := parseAssignments(b.Literal)
	for _, err := range parseErrs {
		d.Warn(p, b, "", fmt.Sprintf("invalid @autodocs assignment: %v", err))
	}

	modules := stringList(settings, "Modules")
	if len(modules) == 0 {
		d.Warn(p, b, "", "@autodocs block without Modules")
		p.Mapping[b] = &doctree.Passthrough{Block: b}
		return nil
	}

	order := symbols.DefaultOrder
	if raw := stringList(settings, "Order"); len(raw) > 0 {
		order = nil
		for _, tag := range raw {
			cat, ok := symbols.ParseCategory(tag)
			if !ok {
				d.Warn(p, b, tag, "unknown category in Order")
				continue
			}
			order = append(order, cat)
		}
	}

	pages := stringList(settings, "Pages")
	public := boolOr(settings, "Public", true)
	private := boolOr(settings, "Private", true)

	entries := d.discoverEntries(p, b, modules, order, pages, public, private)
	sortAutoEntries(entries, len(pages) > 0)

	var nodes []*doctree.Docs
	for _, e := range entries {
		if _, dup := d.Objects[e.identity]; dup {
			d.Warn(p, b, e.fullName, "duplicate docs")
			continue
		}
		nodes = append(nodes, d.buildDocs(p, e.identity, e.entry.Text, e.entry.Path))
	}
	p.Mapping[b] = &doctree.DocsGroup{Nodes: nodes}
	return nil
}

func (d *Document) discoverEntries(p *doctree.Page, b *doctree.Block, modules []string, order []symbols.Category, pages []string, public, private bool) []autoEntry {
	var entries []autoEntry
	for mi, module := range modules {
		bindingDocs, err := d.Backend.EnumerateModuleDocs(module)
		if err != nil {
			d.Warn(p, b, module, "cannot enumerate module docs")
			continue
		}
		for _, bd := range bindingDocs {
			catIdx := categoryIndex(order, d.Backend.BindingCategory(bd.Binding))
			if catIdx < 0 {
				continue
			}
			exported := d.Backend.BindingIsExported(module, bd.Binding)
			if exported && !public {
				continue
			}
			if !exported && !private {
				continue
			}
			for _, sd := range bd.Docs {
				pageIdx := len(pages)
				if len(pages) > 0 {
					pageIdx = matchPage(pages, sd.Entry.Path)
					if pageIdx < 0 {
						continue
					}
				}
				entries = append(entries, autoEntry{
					moduleIdx:   mi,
					exported:    exported,
					pageIdx:     pageIdx,
					path:        sd.Entry.Path,
					categoryIdx: catIdx,
					fullName:    bd.Binding.FullName(),
					identity:    symbols.Identity{Binding: bd.Binding, Signature: sd.Signature},
					entry:       sd.Entry,
				})
			}
		}
	}
	return entries
}

// sortAutoEntries applies the composite comparator, most significant key
// first: module position, exported before unexported, matched page position
// (raw path order when no page list was configured), category position, and
// finally the fully-qualified name. The ordering is total unless names also
// tie.
func sortAutoEntries(entries []autoEntry, pagesConfigured bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.moduleIdx != b.moduleIdx {
			return a.moduleIdx < b.moduleIdx
		}
		if a.exported != b.exported {
			return a.exported
		}
		if pagesConfigured {
			if a.pageIdx != b.pageIdx {
				return a.pageIdx < b.pageIdx
			}
		} else if a.path != b.path {
			return a.path < b.path
		}
		if a.categoryIdx != b.categoryIdx {
			return a.categoryIdx < b.categoryIdx
		}
		return a.fullName < b.fullName
	})
}

func categoryIndex(order []symbols.Category, cat symbols.Category) int {
	for i, c := range order {
		if c == cat {
			return i
		}
	}
	return -1
}

// matchPage returns the index of the first listed page name the path ends
// with, or -1.
func matchPage(pages []string, path string) int {
	for i, pg := range pages {
		if strings.HasSuffix(path, pg) {
			return i
		}
	}
	return -1
}
