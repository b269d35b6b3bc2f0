package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/symbols"
)

func TestDocsStage_ResolvesReferences(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	b := codeBlock("@docs", "Get\nstore.Cache\n", 3)
	p := testPage("api.md", b)

	require.NoError(t, d.ExpandPage(p))
	assert.Empty(t, d.Warnings)

	group, ok := p.Mapping[b].(*doctree.DocsGroup)
	require.True(t, ok)
	require.Len(t, group.Nodes, 2)

	get := group.Nodes[0]
	assert.Equal(t, "store-get", get.Anchor.Slug)
	assert.Equal(t, symbols.Binding{Module: "store", Name: "Get"}, get.Identity.Binding)
	assert.Equal(t, "Get fetches a value.", get.Content)
	assert.Equal(t, "api.md", get.Page)

	assert.Equal(t, "store-cache", group.Nodes[1].Anchor.Slug)

	require.Len(t, d.DocsList, 2)
	assert.Same(t, get, d.Objects[get.Identity])
}

func TestDocsStage_SignatureSelectsOneOverload(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	b := codeBlock("@docs", "Put::bytes\n", 1)
	p := testPage("api.md", b)

	require.NoError(t, d.ExpandPage(p))

	group := p.Mapping[b].(*doctree.DocsGroup)
	require.Len(t, group.Nodes, 1)
	assert.Equal(t, "Put stores raw bytes.", group.Nodes[0].Content)
	assert.Equal(t, "bytes", group.Nodes[0].Identity.Signature)
	assert.Equal(t, "store-put-bytes", group.Nodes[0].Anchor.Slug)
}

func TestDocsStage_NoSignatureConcatenatesAll(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	b := codeBlock("@docs", "Put\n", 1)
	p := testPage("api.md", b)

	require.NoError(t, d.ExpandPage(p))

	group := p.Mapping[b].(*doctree.DocsGroup)
	require.Len(t, group.Nodes, 1)
	assert.Equal(t, "Put stores a string.\n\nPut stores raw bytes.", group.Nodes[0].Content)
}

func TestDocsStage_CurrentModuleFromMeta(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	meta := codeBlock("@meta", "CurrentModule = auth\n", 1)
	b := codeBlock("@docs", "Login\n", 5)
	p := testPage("auth.md", meta, b)

	require.NoError(t, d.ExpandPage(p))

	assert.IsType(t, &doctree.Empty{}, p.Mapping[meta])
	group := p.Mapping[b].(*doctree.DocsGroup)
	require.Len(t, group.Nodes, 1)
	assert.Equal(t, "auth", group.Nodes[0].Identity.Binding.Module)
}

func TestDocsStage_FailureDegradesWholeBlock(t *testing.T) {
	tests := []struct {
		name    string
		refs    string
		warning string
	}{
		{"undefined binding", "Missing\n", "undefined binding"},
		{"unknown module", "ghost.Get\n", "unresolvable symbol reference"},
		{"keyword without docs", "for\n", "no docs found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDocument(t, Options{DefaultModule: "store"})
			b := codeBlock("@docs", "Get\n"+tc.refs, 1)
			p := testPage("api.md", b)

			require.NoError(t, d.ExpandPage(p))

			code, ok := p.Mapping[b].(*doctree.Code)
			require.True(t, ok, "failed block degrades to a plain code node")
			assert.Empty(t, code.Lang)
			assert.Equal(t, b.Literal, code.Source)

			require.Len(t, d.Warnings, 1)
			assert.Contains(t, d.Warnings[0].Message, tc.warning)

			// The reference resolved before the failure stays registered.
			assert.Len(t, d.DocsList, 1)
		})
	}
}

func TestDocsStage_DuplicateAcrossPages(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store"})
	first := codeBlock("@docs", "Get\n", 1)
	second := codeBlock("@docs", "Get\n", 1)

	require.NoError(t, d.ExpandPage(testPage("a.md", first)))
	p2 := testPage("b.md", second)
	require.NoError(t, d.ExpandPage(p2))

	assert.IsType(t, &doctree.Code{}, p2.Mapping[second])
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "duplicate docs")
	assert.Len(t, d.DocsList, 1)
}

func TestDocsStage_ModuleFilter(t *testing.T) {
	d := newTestDocument(t, Options{DefaultModule: "store", ModuleFilter: []string{"auth"}})
	b := codeBlock("@docs", "Get\n", 1)
	p := testPage("api.md", b)

	require.NoError(t, d.ExpandPage(p))

	assert.IsType(t, &doctree.Code{}, p.Mapping[b])
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "no docs found")
}
