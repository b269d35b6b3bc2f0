package expand

import (
	"fmt"

	"github.com/june-6th/docexpand/internal/doctree"
)

// runEval evaluates all expressions of an "@eval" block in a fresh context
// and keeps only the final result value, wrapped in a generic evaluated-
// result node so downstream rendering can embed whatever the value is.
// The first failing expression aborts the block, which then maps to itself.
func runEval(d *Document, p *doctree.Page, b *doctree.Block) error {
	ctx := d.Sandboxes.GetOrCreate(p, "")

	results, ok := evalSequential(ctx, b.Literal)
	if !ok {
		last := results[len(results)-1]
		d.Warn(p, b, last.Source, fmt.Sprintf("@eval failed: %v", last.Err))
		p.Mapping[b] = &doctree.Passthrough{Block: b}
		return nil
	}

	var value any
	if len(results) > 0 {
		value = results[len(results)-1].Value
	}
	p.Mapping[b] = &doctree.EvalResult{Value: value}
	return nil
}
