package expand

import (
	"fmt"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
)

// runExample evaluates an "@example" block and replaces it with the visible
// source (hide-marked lines removed) followed by the final result: an inline
// image when the value exposes that capability, otherwise preformatted text
// built from the captured output plus the printed value. Empty parts are
// omitted by the renderer. The first failing expression aborts the block.
func runExample(d *Document, p *doctree.Page, b *doctree.Block) error {
	name, err := parseEvalTag(exampleTagPattern, b.Info)
	if err != nil {
		return err
	}
	ctx := d.Sandboxes.GetOrCreate(p, name)

	results, ok := evalSequential(ctx, removeHideMarkers(b.Literal))
	if !ok {
		last := results[len(results)-1]
		d.Warn(p, b, last.Source, fmt.Sprintf("@example failed: %v", last.Err))
		p.Mapping[b] = &doctree.Passthrough{Block: b}
		return nil
	}

	node := &doctree.Example{Source: stripHiddenLines(b.Literal)}

	var out strings.Builder
	var value any
	for _, res := range results {
		out.WriteString(res.Output)
	}
	if len(results) > 0 {
		value = results[len(results)-1].Value
	}

	if img := asImage(value); img != nil {
		node.Image = img
	} else {
		text := out.String()
		if repr := formatValue(value); repr != "" {
			if text != "" && !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			text += repr
		}
		node.Output = strings.TrimRight(text, "\n")
	}

	p.Mapping[b] = node
	return nil
}
