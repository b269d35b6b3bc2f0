package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/symbols"
)

func autoNames(group *doctree.DocsGroup) []string {
	names := make([]string, 0, len(group.Nodes))
	for _, n := range group.Nodes {
		names = append(names, n.Identity.Binding.FullName())
	}
	return names
}

func TestAutoDocsStage_DiscoversModule(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Modules = [store]\n", 1)
	p := testPage("ref.md", b)

	require.NoError(t, d.ExpandPage(p))
	assert.Empty(t, d.Warnings)

	group, ok := p.Mapping[b].(*doctree.DocsGroup)
	require.True(t, ok)
	// Exported bindings first, then source path, category order, and name.
	assert.Equal(t, []string{"store.Get", "store.Put", "store.Put", "store.Cache", "store.evict"}, autoNames(group))
	assert.Equal(t, "string", group.Nodes[1].Identity.Signature)
	assert.Equal(t, "bytes", group.Nodes[2].Identity.Signature)
}

func TestAutoDocsStage_MissingModulesWarns(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Order = [function]\n", 1)
	p := testPage("ref.md", b)

	require.NoError(t, d.ExpandPage(p))

	assert.IsType(t, &doctree.Passthrough{}, p.Mapping[b])
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "without Modules")
}

func TestAutoDocsStage_VisibilityFilters(t *testing.T) {
	t.Run("public only", func(t *testing.T) {
		d := newTestDocument(t, Options{})
		b := codeBlock("@autodocs", "Modules = [store]\nPrivate = false\n", 1)
		p := testPage("ref.md", b)
		require.NoError(t, d.ExpandPage(p))

		names := autoNames(p.Mapping[b].(*doctree.DocsGroup))
		assert.NotContains(t, names, "store.evict")
		assert.Contains(t, names, "store.Get")
	})

	t.Run("private only", func(t *testing.T) {
		d := newTestDocument(t, Options{})
		b := codeBlock("@autodocs", "Modules = [store]\nPublic = false\n", 1)
		p := testPage("ref.md", b)
		require.NoError(t, d.ExpandPage(p))

		assert.Equal(t, []string{"store.evict"}, autoNames(p.Mapping[b].(*doctree.DocsGroup)))
	})
}

func TestAutoDocsStage_OrderRestrictsCategories(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Modules = [store]\nOrder = [type]\n", 1)
	p := testPage("ref.md", b)
	require.NoError(t, d.ExpandPage(p))

	assert.Equal(t, []string{"store.Cache"}, autoNames(p.Mapping[b].(*doctree.DocsGroup)))
}

func TestAutoDocsStage_UnknownCategoryWarns(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Modules = [store]\nOrder = [gadget, type]\n", 1)
	p := testPage("ref.md", b)
	require.NoError(t, d.ExpandPage(p))

	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "unknown category")
	assert.Equal(t, []string{"store.Cache"}, autoNames(p.Mapping[b].(*doctree.DocsGroup)))
}

func TestAutoDocsStage_PagesFilterAndOrder(t *testing.T) {
	d := newTestDocument(t, Options{})
	// types.md listed before api.md flips the page-position ordering;
	// internals.md is absent, so evict drops out entirely.
	b := codeBlock("@autodocs", "Modules = [store]\nPages = [\"types.md\", \"api.md\"]\n", 1)
	p := testPage("ref.md", b)
	require.NoError(t, d.ExpandPage(p))

	assert.Equal(t, []string{"store.Cache", "store.Get", "store.Put", "store.Put"}, autoNames(p.Mapping[b].(*doctree.DocsGroup)))
}

func TestAutoDocsStage_DuplicatesSkippedPerEntry(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	docs := codeBlock("@docs", "Get\n", 1)
	require.NoError(t, d.ExpandPage(testPage("api.md", docs)))

	auto := codeBlock("@autodocs", "Modules = [store]\n", 1)
	p := testPage("ref.md", auto)
	require.NoError(t, d.ExpandPage(p))

	group := p.Mapping[auto].(*doctree.DocsGroup)
	assert.NotContains(t, autoNames(group), "store.Get", "already documented entry is skipped")
	assert.Contains(t, autoNames(group), "store.Cache", "remaining entries survive the duplicate")
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "duplicate docs")
}

func TestAutoDocsStage_MultipleModulesKeepConfiguredOrder(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Modules = [auth, store]\nPrivate = false\n", 1)
	p := testPage("ref.md", b)
	require.NoError(t, d.ExpandPage(p))

	names := autoNames(p.Mapping[b].(*doctree.DocsGroup))
	assert.Equal(t, "auth.Login", names[0], "auth listed first outranks store entries")
}

func TestSortAutoEntries(t *testing.T) {
	e := func(moduleIdx int, exported bool, pageIdx int, path string, catIdx int, name string) autoEntry {
		return autoEntry{moduleIdx: moduleIdx, exported: exported, pageIdx: pageIdx, path: path, categoryIdx: catIdx, fullName: name}
	}

	t.Run("pages configured uses page position", func(t *testing.T) {
		entries := []autoEntry{
			e(0, true, 1, "z.md", 0, "m.A"),
			e(0, true, 0, "a.md", 1, "m.B"),
		}
		sortAutoEntries(entries, true)
		assert.Equal(t, "m.B", entries[0].fullName)
	})

	t.Run("no pages falls back to raw path", func(t *testing.T) {
		entries := []autoEntry{
			e(0, true, 0, "z.md", 0, "m.A"),
			e(0, true, 0, "a.md", 1, "m.B"),
		}
		sortAutoEntries(entries, false)
		assert.Equal(t, "m.B", entries[0].fullName)
	})

	t.Run("exported outranks page position", func(t *testing.T) {
		entries := []autoEntry{
			e(0, false, 0, "a.md", 0, "m.a"),
			e(0, true, 1, "b.md", 0, "m.B"),
		}
		sortAutoEntries(entries, true)
		assert.Equal(t, "m.B", entries[0].fullName)
	})

	t.Run("name is final tie break", func(t *testing.T) {
		entries := []autoEntry{
			e(0, true, 0, "a.md", 0, "m.B"),
			e(0, true, 0, "a.md", 0, "m.A"),
		}
		sortAutoEntries(entries, true)
		assert.Equal(t, "m.A", entries[0].fullName)
	})
}

func TestAutoDocsStage_RegistersObjects(t *testing.T) {
	d := newTestDocument(t, Options{})
	b := codeBlock("@autodocs", "Modules = [auth]\n", 1)
	p := testPage("ref.md", b)
	require.NoError(t, d.ExpandPage(p))

	identity := symbols.Identity{Binding: symbols.Binding{Module: "auth", Name: "Login"}}
	require.Contains(t, d.Objects, identity)
	assert.Equal(t, "auth-login", d.Objects[identity].Anchor.Slug)
}
