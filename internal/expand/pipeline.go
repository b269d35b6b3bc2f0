package expand

import (
	"fmt"
	"sort"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/errs"
)

// Stage is one dispatch pipeline entry. Stages run in ascending priority
// order, each one to completion across a whole page before the next starts,
// so later stages observe the fully-populated registries left by earlier
// ones (contents generation sees every header anchor on the page).
type Stage struct {
	// Priority orders the stage; must be distinct across the pipeline.
	Priority int

	Name string

	// Match decides from the block's kind and tag whether this stage fires.
	Match func(b *doctree.Block) bool

	// Run transforms the block: it records a replacement in the page
	// mapping and/or mutates the document registries. A returned error is
	// build-fatal (malformed directive syntax); recoverable conditions are
	// recorded via Document.Warn instead.
	Run func(d *Document, p *doctree.Page, b *doctree.Block) error
}

// Stage priorities. Adding a directive type means appending one stage with a
// fresh priority; no existing stage changes.
const (
	PriorityHeaders  = 1
	PriorityMeta     = 2
	PriorityDocs     = 3
	PriorityAutoDocs = 4
	PriorityEval     = 5
	PriorityIndex    = 6
	PriorityContents = 7
	PriorityExample  = 8
	PriorityREPL     = 9
	PrioritySetup    = 10
)

func defaultStages() []Stage {
	return []Stage{
		{Priority: PriorityHeaders, Name: "track-headers", Match: matchHeader, Run: runHeaders},
		{Priority: PriorityMeta, Name: "meta", Match: matchTag("@meta"), Run: runMeta},
		{Priority: PriorityDocs, Name: "docs", Match: matchTag("@docs"), Run: runDocs},
		{Priority: PriorityAutoDocs, Name: "autodocs", Match: matchTag("@autodocs"), Run: runAutoDocs},
		{Priority: PriorityEval, Name: "eval", Match: matchTag("@eval"), Run: runEval},
		{Priority: PriorityIndex, Name: "index", Match: matchTag("@index"), Run: runIndex},
		{Priority: PriorityContents, Name: "contents", Match: matchTag("@contents"), Run: runContents},
		{Priority: PriorityExample, Name: "example", Match: matchTagPrefix("@example"), Run: runExample},
		{Priority: PriorityREPL, Name: "repl", Match: matchTagPrefix("@repl"), Run: runREPL},
		{Priority: PrioritySetup, Name: "setup", Match: matchTagPrefix("@setup"), Run: runSetup},
	}
}

// AddStage registers an additional directive stage. Priorities must stay
// distinct; this is the extensibility contract of the pipeline.
func (d *Document) AddStage(s Stage) error {
	for _, existing := range d.stages {
		if existing.Priority == s.Priority {
			return errs.Fatal(errs.CategoryInternal,
				fmt.Sprintf("stage %q reuses priority %d of %q", s.Name, s.Priority, existing.Name))
		}
	}
	d.stages = append(d.stages, s)
	return nil
}

// ExpandPage dispatches every block of one page through the stage pipeline.
// Page metadata is reset first; blocks already replaced by an earlier stage
// are left untouched; blocks no stage matched map to themselves.
func (d *Document) ExpandPage(p *doctree.Page) error {
	p.ResetMeta()
	d.Pages = append(d.Pages, p)

	ordered := make([]Stage, len(d.stages))
	copy(ordered, d.stages)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	for _, stage := range ordered {
		for _, b := range p.Blocks {
			if _, replaced := p.Mapping[b]; replaced {
				continue
			}
			if !stage.Match(b) {
				continue
			}
			if err := stage.Run(d, p, b); err != nil {
				return errs.Wrap(err, errs.GetCategory(err), errs.SeverityFatal,
					fmt.Sprintf("stage %s on %s:%d", stage.Name, p.Source, b.Line))
			}
		}
	}

	for _, b := range p.Blocks {
		if _, replaced := p.Mapping[b]; !replaced {
			p.Mapping[b] = &doctree.Passthrough{Block: b}
		}
	}
	return nil
}

// ExpandAll processes pages strictly sequentially in the given order, then
// finalizes generated index and contents nodes against the full registries.
func (d *Document) ExpandAll(pages []*doctree.Page) error {
	for _, p := range pages {
		if err := d.ExpandPage(p); err != nil {
			return err
		}
	}
	d.Finalize()
	return nil
}

func matchHeader(b *doctree.Block) bool {
	return b.Kind == doctree.BlockHeader
}

func matchTag(tag string) func(*doctree.Block) bool {
	return func(b *doctree.Block) bool {
		return b.Kind == doctree.BlockCode && b.Info == tag
	}
}

// matchTagPrefix fires on any tag starting with the directive word. Tags
// that then fail the directive's full pattern are authoring mistakes and
// abort the build from the stage's Run.
func matchTagPrefix(prefix string) func(*doctree.Block) bool {
	return func(b *doctree.Block) bool {
		return b.Kind == doctree.BlockCode && strings.HasPrefix(b.Info, prefix)
	}
}
