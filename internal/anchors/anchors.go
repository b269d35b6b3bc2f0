// Package anchors allocates unique, stable, human-readable identifiers for
// headers and documented symbols. Anchors are grouped; slugs are unique
// within a group for the whole build, and colliding candidates receive
// deterministic numeric suffixes in first-seen order.
package anchors

import "fmt"

// Registry group names used by the expansion pipeline.
const (
	GroupHeaders = "headers"
	GroupDocs    = "docs"
)

// Anchor uniquely identifies a header or documented symbol location.
type Anchor struct {
	Slug string // unique within the registry group
	Page string // destination path of the owning page
	Seq  int    // global allocation sequence, monotonically increasing
}

// ID returns the fragment identifier for the anchor.
func (a Anchor) ID() string {
	return a.Slug
}

type group struct {
	taken   map[string]bool
	byKey   map[string][]Anchor
	ordered []Anchor
}

func newGroup() *group {
	return &group{
		taken: make(map[string]bool),
		byKey: make(map[string][]Anchor),
	}
}

// Registry allocates anchors across all pages of one build.
// Not safe for concurrent use; expansion is page-sequential.
type Registry struct {
	seq    int
	groups map[string]*group
}

// NewRegistry creates an empty anchor registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*group)}
}

// Add allocates an anchor in groupName. candidate must already be a
// normalized slug (see Slugify); if it is taken within the group, numeric
// suffixes -2, -3, ... are tried until a free slug is found. rawKey records
// the pre-normalization key so later references can resolve "the Nth
// occurrence" of identical header text.
func (r *Registry) Add(groupName, rawKey, candidate, page string) Anchor {
	g := r.groups[groupName]
	if g == nil {
		g = newGroup()
		r.groups[groupName] = g
	}

	slug := candidate
	for n := 2; g.taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", candidate, n)
	}
	g.taken[slug] = true

	r.seq++
	a := Anchor{Slug: slug, Page: page, Seq: r.seq}
	g.byKey[rawKey] = append(g.byKey[rawKey], a)
	g.ordered = append(g.ordered, a)
	return a
}

// Occurrences returns every anchor allocated under rawKey in groupName,
// in allocation order.
func (r *Registry) Occurrences(groupName, rawKey string) []Anchor {
	g := r.groups[groupName]
	if g == nil {
		return nil
	}
	return g.byKey[rawKey]
}

// All returns every anchor in groupName in allocation order.
func (r *Registry) All(groupName string) []Anchor {
	g := r.groups[groupName]
	if g == nil {
		return nil
	}
	return g.ordered
}
