package anchors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Intro", want: "intro"},
		{name: "spaces collapse", input: "Getting  Started", want: "getting-started"},
		{name: "punctuation", input: "What's new?", want: "what-s-new"},
		{name: "accents fold", input: "Café Überblick", want: "cafe-uberblick"},
		{name: "qualified name", input: "store.Get", want: "store-get"},
		{name: "leading and trailing junk", input: "  ...Intro!  ", want: "intro"},
		{name: "only junk", input: "???", want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestRegistryAdd_UniqueSlugs(t *testing.T) {
	r := NewRegistry()

	a1 := r.Add(GroupHeaders, "Intro", "intro", "index.md")
	a2 := r.Add(GroupHeaders, "Intro", "intro", "index.md")
	a3 := r.Add(GroupHeaders, "Intro", "intro", "other.md")

	assert.Equal(t, "intro", a1.Slug)
	assert.Equal(t, "intro-2", a2.Slug)
	assert.Equal(t, "intro-3", a3.Slug)
}

func TestRegistryAdd_SequenceMonotone(t *testing.T) {
	r := NewRegistry()

	a1 := r.Add(GroupHeaders, "A", "a", "p.md")
	a2 := r.Add(GroupDocs, "B", "b", "p.md")
	a3 := r.Add(GroupHeaders, "C", "c", "p.md")

	assert.Less(t, a1.Seq, a2.Seq)
	assert.Less(t, a2.Seq, a3.Seq)
}

func TestRegistryAdd_GroupsIndependent(t *testing.T) {
	r := NewRegistry()

	h := r.Add(GroupHeaders, "Get", "get", "p.md")
	d := r.Add(GroupDocs, "Get", "get", "p.md")

	// Same slug may live in different groups.
	assert.Equal(t, "get", h.Slug)
	assert.Equal(t, "get", d.Slug)
}

func TestRegistryOccurrences(t *testing.T) {
	r := NewRegistry()

	r.Add(GroupHeaders, "Usage", "usage", "a.md")
	r.Add(GroupHeaders, "Usage", "usage", "b.md")
	r.Add(GroupHeaders, "Other", "other", "a.md")

	occ := r.Occurrences(GroupHeaders, "Usage")
	require.Len(t, occ, 2)
	assert.Equal(t, "usage", occ[0].Slug)
	assert.Equal(t, "a.md", occ[0].Page)
	assert.Equal(t, "usage-2", occ[1].Slug)
	assert.Equal(t, "b.md", occ[1].Page)

	assert.Nil(t, r.Occurrences(GroupHeaders, "Missing"))
	assert.Nil(t, r.Occurrences("nogroup", "Usage"))
}

func TestRegistryAll_AllocationOrder(t *testing.T) {
	r := NewRegistry()

	r.Add(GroupHeaders, "B", "b", "p.md")
	r.Add(GroupHeaders, "A", "a", "p.md")

	all := r.All(GroupHeaders)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Slug)
	assert.Equal(t, "a", all[1].Slug)
}
