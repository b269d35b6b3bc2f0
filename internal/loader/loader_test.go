package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/june-6th/docexpand/internal/doctree"
)

const samplePage = "# Intro\n" +
	"\n" +
	"Some prose here.\n" +
	"\n" +
	"## [Details](@id custom-anchor)\n" +
	"\n" +
	"```@docs\n" +
	"store.Get\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(\"plain code\")\n" +
	"```\n" +
	"\n" +
	"- a list item\n" +
	"- another item\n"

func TestParse(t *testing.T) {
	page := Parse("guide.md", "guide.md", []byte(samplePage))

	require.Len(t, page.Blocks, 6)

	t.Run("plain header", func(t *testing.T) {
		b := page.Blocks[0]
		assert.Equal(t, doctree.BlockHeader, b.Kind)
		assert.Equal(t, 1, b.Level)
		assert.Equal(t, "Intro", b.Text)
		assert.Empty(t, b.IDTarget)
	})

	t.Run("prose passthrough", func(t *testing.T) {
		b := page.Blocks[1]
		assert.Equal(t, doctree.BlockOther, b.Kind)
		assert.Equal(t, "Some prose here.", b.Literal)
	})

	t.Run("header with id link", func(t *testing.T) {
		b := page.Blocks[2]
		assert.Equal(t, doctree.BlockHeader, b.Kind)
		assert.Equal(t, 2, b.Level)
		assert.Equal(t, "Details", b.Text, "link text unwrapped for display")
		assert.Equal(t, "custom-anchor", b.IDTarget)
	})

	t.Run("directive block", func(t *testing.T) {
		b := page.Blocks[3]
		assert.Equal(t, doctree.BlockCode, b.Kind)
		assert.Equal(t, "@docs", b.Info)
		assert.Equal(t, "store.Get\n", b.Literal)
	})

	t.Run("plain fenced code", func(t *testing.T) {
		b := page.Blocks[4]
		assert.Equal(t, doctree.BlockCode, b.Kind)
		assert.Equal(t, "go", b.Info)
	})

	t.Run("list passthrough keeps markers", func(t *testing.T) {
		b := page.Blocks[5]
		assert.Equal(t, doctree.BlockOther, b.Kind)
		assert.Contains(t, b.Literal, "- a list item")
		assert.Contains(t, b.Literal, "- another item")
	})
}

func TestParse_LineNumbers(t *testing.T) {
	page := Parse("p.md", "p.md", []byte(samplePage))

	assert.Equal(t, 1, page.Blocks[0].Line)
	assert.Equal(t, 3, page.Blocks[1].Line)
	// The fenced @docs body starts on line 8; the block reports its first
	// content line.
	assert.Equal(t, 8, page.Blocks[3].Line)
}

func TestLoadAll_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o600))

	pages, err := LoadAll(context.Background(), dir, []string{"b.md", "a.md"})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "b.md", pages[0].Source)
	assert.Equal(t, "a.md", pages[1].Source)
}

func TestLoadAll_MissingPage(t *testing.T) {
	_, err := LoadAll(context.Background(), t.TempDir(), []string{"absent.md"})
	assert.Error(t, err)
}
