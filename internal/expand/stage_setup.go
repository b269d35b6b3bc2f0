package expand

import (
	"fmt"

	"github.com/june-6th/docexpand/internal/doctree"
)

// runSetup evaluates a "@setup <name>" block as one unit into the named
// context, fully silently: success maps the block to an empty node, failure
// warns and leaves the block unmodified. The name is mandatory; a tag
// without one is a build-fatal authoring mistake.
func runSetup(d *Document, p *doctree.Page, b *doctree.Block) error {
	name, err := parseEvalTag(setupTagPattern, b.Info)
	if err != nil {
		return err
	}
	ctx := d.Sandboxes.GetOrCreate(p, name)

	if results, ok := evalSequential(ctx, b.Literal); !ok {
		last := results[len(results)-1]
		d.Warn(p, b, last.Source, fmt.Sprintf("@setup failed: %v", last.Err))
		p.Mapping[b] = &doctree.Passthrough{Block: b}
		return nil
	}

	p.Mapping[b] = &doctree.Empty{}
	return nil
}
