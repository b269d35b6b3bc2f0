package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Replacement(t *testing.T) {
	b := &Block{Kind: BlockOther, Literal: "prose"}
	p := NewPage("a.md", "a.md", []*Block{b})

	t.Run("identity fallback", func(t *testing.T) {
		n, ok := p.Replacement(b).(*Passthrough)
		require.True(t, ok)
		assert.Same(t, b, n.Block)
	})

	t.Run("mapped node wins", func(t *testing.T) {
		p.Mapping[b] = &Empty{}
		assert.IsType(t, &Empty{}, p.Replacement(b))
	})
}

func TestPage_ResetMeta(t *testing.T) {
	p := NewPage("a.md", "a.md", nil)
	p.Meta["CurrentModule"] = "store"
	p.ResetMeta()
	assert.Empty(t, p.Meta)
}

func TestBlock_Tag(t *testing.T) {
	assert.Equal(t, "@docs", (&Block{Kind: BlockCode, Info: "@docs"}).Tag())
	assert.Empty(t, (&Block{Kind: BlockHeader, Info: "x"}).Tag())
}
