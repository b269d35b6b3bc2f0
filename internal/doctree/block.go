// Package doctree models the parsed block tree of a documentation page and
// the closed set of nodes the expansion pipeline replaces blocks with.
// Blocks are immutable once produced by the loader; expansion never mutates
// a block, it records a replacement node in the page's mapping.
package doctree

// BlockKind discriminates the block shapes the pipeline recognizes.
type BlockKind int

const (
	// BlockOther is an opaque passthrough block (paragraphs, lists, ...).
	BlockOther BlockKind = iota
	// BlockHeader is an ATX/setext heading.
	BlockHeader
	// BlockCode is a fenced code block; Info carries the full info string.
	BlockCode
)

// Block is one top-level node of a parsed page.
type Block struct {
	Kind BlockKind

	// Header fields
	Level    int    // heading level 1..6
	Text     string // plain-text rendering of the heading inlines
	IDTarget string // explicit anchor name from a single "@id <name>" link, or ""

	// Code fields
	Info string // fence info string, e.g. "@example shared" or "go"

	// Literal is the code body for BlockCode, the raw source segment for
	// BlockOther, and unused for BlockHeader.
	Literal string

	// Line is the 1-based source line the block starts at, for warnings.
	Line int
}

// Tag returns the fence info string for code blocks, "" otherwise.
func (b *Block) Tag() string {
	if b.Kind != BlockCode {
		return ""
	}
	return b.Info
}
