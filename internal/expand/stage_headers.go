package expand

import (
	"github.com/june-6th/docexpand/internal/anchors"
	"github.com/june-6th/docexpand/internal/doctree"
)

// runHeaders allocates an anchor for every header block. Headers carrying an
// explicit "@id <name>" link use that name as the slug source; the loader
// already unwrapped the link text into the header's display text.
func runHeaders(d *Document, p *doctree.Page, b *doctree.Block) error {
	source := b.Text
	if b.IDTarget != "" {
		source = b.IDTarget
	}

	a := d.Anchors.Add(anchors.GroupHeaders, b.Text, anchors.Slugify(source), p.Dest)
	entry := doctree.ContentsEntry{Anchor: a, Text: b.Text, Level: b.Level}
	d.Headers = append(d.Headers, entry)

	p.Mapping[b] = &doctree.HeaderAnchor{Anchor: a, Text: b.Text, Level: b.Level}
	return nil
}
