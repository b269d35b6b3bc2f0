package expand

import (
	"fmt"

	"github.com/june-6th/docexpand/internal/doctree"
)

// runMeta parses "Key = value" assignments into the page metadata map.
// Settings inherit down the rest of the page (CurrentModule in particular).
// Unparseable lines degrade to warnings; the block renders as nothing.
func runMeta(d *Document, p *doctree.Page, b *doctree.Block) error {
	settings, parseErrs := parseAssignments(b.Literal)
	for _, err := range parseErrs {
		d.Warn(p, b, "", fmt.Sprintf("invalid @meta assignment: %v", err))
	}
	for k, v := range settings {
		p.Meta[k] = v
	}
	p.Mapping[b] = &doctree.Empty{}
	return nil
}
