package expand

import (
	"strings"

	"github.com/june-6th/docexpand/internal/anchors"
	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/symbols"
)

// runDocs resolves every symbol reference in a "@docs" block, in order.
// Each failed reference degrades to a warning; any failure marks the whole
// block failed for rendering, though entries registered before (or after)
// the failure stay in the object registry.
func runDocs(d *Document, p *doctree.Page, b *doctree.Block) error {
	module := d.currentModule(p)
	failed := false
	var nodes []*doctree.Docs

	for _, ref := range strings.Split(b.Literal, "\n") {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		name, signature := symbols.SplitSignature(ref)
		binding, err := d.Backend.ResolveBinding(module, name)
		if err != nil {
			d.Warn(p, b, ref, "unresolvable symbol reference")
			failed = true
			continue
		}
		if !d.Backend.BindingDefined(binding) && !d.Backend.IsKeyword(binding.Name) {
			d.Warn(p, b, ref, "undefined binding")
			failed = true
			continue
		}

		identity := symbols.Identity{Binding: binding, Signature: signature}
		if _, dup := d.Objects[identity]; dup {
			d.Warn(p, b, ref, "duplicate docs")
			failed = true
			continue
		}

		entries := d.Backend.FetchDocs(binding, signature, d.Options.ModuleFilter)
		if len(entries) == 0 {
			d.Warn(p, b, ref, "no docs found")
			failed = true
			continue
		}

		texts := make([]string, 0, len(entries))
		for _, e := range entries {
			texts = append(texts, e.Text)
		}
		nodes = append(nodes, d.buildDocs(p, identity, strings.Join(texts, "\n\n"), entries[0].Path))
	}

	if failed {
		// Clear the language tag so downstream renderers do not re-interpret
		// the block as a directive.
		p.Mapping[b] = &doctree.Code{Lang: "", Source: b.Literal}
		return nil
	}
	p.Mapping[b] = &doctree.DocsGroup{Nodes: nodes}
	return nil
}

// buildDocs allocates an anchor for the identity, constructs the docs node,
// and registers it. Callers must have ruled out duplicates.
func (d *Document) buildDocs(p *doctree.Page, identity symbols.Identity, content, path string) *doctree.Docs {
	slugSource := identity.Binding.FullName()
	if identity.Signature != "" {
		slugSource += "-" + identity.Signature
	}
	a := d.Anchors.Add(anchors.GroupDocs, identity.Binding.FullName(), anchors.Slugify(slugSource), p.Dest)

	node := &doctree.Docs{
		Anchor:   a,
		Identity: identity,
		Content:  content,
		Path:     path,
		Page:     p.Dest,
	}
	d.register(node)
	return node
}
