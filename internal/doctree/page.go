package doctree

// Page is one source file flowing through expansion: an ordered block
// sequence, a per-page metadata map (inherited settings and cached sandbox
// handles), and the block→replacement mapping populated by dispatch.
type Page struct {
	// Source is the path the page was loaded from.
	Source string

	// Dest is the destination path used to form relative anchors.
	Dest string

	// Blocks is the ordered top-level block sequence. Immutable after load.
	Blocks []*Block

	// Meta holds per-page settings written by "@meta" blocks and cached
	// sandbox contexts. Reset at the start of the page's expansion; never
	// visible to another page.
	Meta map[string]any

	// Mapping records the replacement node for each block. Every block has
	// exactly one entry once expansion completes.
	Mapping map[*Block]Node
}

// NewPage creates a page with empty metadata and mapping.
func NewPage(source, dest string, blocks []*Block) *Page {
	return &Page{
		Source:  source,
		Dest:    dest,
		Blocks:  blocks,
		Meta:    make(map[string]any),
		Mapping: make(map[*Block]Node),
	}
}

// ResetMeta discards all per-page metadata, including any cached sandbox
// contexts from a previous expansion of the same page.
func (p *Page) ResetMeta() {
	p.Meta = make(map[string]any)
}

// Replacement returns the mapped node for a block, or an identity
// passthrough if the block was never matched.
func (p *Page) Replacement(b *Block) Node {
	if n, ok := p.Mapping[b]; ok {
		return n
	}
	return &Passthrough{Block: b}
}
