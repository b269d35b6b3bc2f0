package doctree

import (
	"github.com/june-6th/docexpand/internal/anchors"
	"github.com/june-6th/docexpand/internal/symbols"
)

// Node is the closed union of replacement nodes expansion can produce.
// The unexported marker method keeps the set closed so the renderer can
// match exhaustively.
type Node interface {
	node()
}

// Passthrough maps a block to itself, unmodified.
type Passthrough struct {
	Block *Block
}

// HeaderAnchor replaces a header block with its allocated anchor.
type HeaderAnchor struct {
	Anchor anchors.Anchor
	Text   string // display text, "@id" link unwrapped
	Level  int
}

// Code replaces a block with a plain fenced code block. Used for failed
// directive blocks, with Lang cleared so renderers do not re-interpret the
// tag as a directive.
type Code struct {
	Lang   string
	Source string
}

// Docs is resolved documentation for one symbol identity.
type Docs struct {
	Anchor   anchors.Anchor
	Identity symbols.Identity
	Content  string // concatenated documentation entries
	Path     string // source path of the first contributing entry
	Page     string // destination path of the owning page
}

// DocsGroup replaces a "@docs"/"@autodocs" block with its resolved entries.
type DocsGroup struct {
	Nodes []*Docs
}

// EvalResult replaces an "@eval" block with the final evaluated value.
type EvalResult struct {
	Value any
}

// InlineImage is image content produced by evaluated code.
type InlineImage struct {
	MIME string
	Data []byte
}

// Example replaces an "@example" block with its visible source and result.
// Empty parts are omitted by the renderer; Image takes precedence over
// Output when set.
type Example struct {
	Source string
	Output string
	Image  *InlineImage
}

// REPL replaces a "@repl" block with a prompt-formatted transcript.
type REPL struct {
	Transcript string
}

// Empty replaces a successfully evaluated "@setup" block.
type Empty struct{}

// Index replaces an "@index" block. Entries are populated during document
// finalization, after every page has been expanded.
type Index struct {
	Pages   []string // page allow-list; empty means all pages
	Entries []*Docs
}

// ContentsEntry is one header reference in a generated outline.
type ContentsEntry struct {
	Anchor anchors.Anchor
	Text   string
	Level  int
}

// Contents replaces a "@contents" block with a nested header outline up to
// Depth. Entries are populated during document finalization.
type Contents struct {
	Pages   []string
	Depth   int
	Entries []ContentsEntry
}

func (*Passthrough) node()  {}
func (*HeaderAnchor) node() {}
func (*Code) node()         {}
func (*Docs) node()         {}
func (*DocsGroup) node()    {}
func (*EvalResult) node()   {}
func (*Example) node()      {}
func (*REPL) node()         {}
func (*Empty) node()        {}
func (*Index) node()        {}
func (*Contents) node()     {}
