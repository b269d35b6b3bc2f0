// Package sets provides a small generic hash set for comparable keys.
package sets

// Set is a hash set over comparable keys.
type Set[T comparable] map[T]struct{}

// New creates a set holding the given values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add inserts v into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has reports whether v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}
