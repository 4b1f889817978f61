package content

import "sort"

// Standard inline style names.
const (
	StyleBold      = "BOLD"
	StyleItalic    = "ITALIC"
	StyleUnderline = "UNDERLINE"
)

// StyleSet is an immutable set of inline style names (BOLD, ITALIC, ...).
// The zero value is the empty set.
type StyleSet struct {
	names map[string]struct{}
}

// NewStyleSet builds a set from the given names.
func NewStyleSet(names ...string) StyleSet {
	if len(names) == 0 {
		return StyleSet{}
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return StyleSet{names: m}
}

// Has reports whether the set contains name.
func (s StyleSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int {
	return len(s.names)
}

// Names returns the styles in sorted order.
func (s StyleSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Add returns a new set including name.
func (s StyleSet) Add(name string) StyleSet {
	if s.Has(name) {
		return s
	}
	return NewStyleSet(append(s.Names(), name)...)
}

// Remove returns a new set without name.
func (s StyleSet) Remove(name string) StyleSet {
	if !s.Has(name) {
		return s
	}
	out := make([]string, 0, len(s.names)-1)
	for n := range s.names {
		if n != name {
			out = append(out, n)
		}
	}
	return NewStyleSet(out...)
}

// Toggle returns a new set with name flipped.
func (s StyleSet) Toggle(name string) StyleSet {
	if s.Has(name) {
		return s.Remove(name)
	}
	return s.Add(name)
}

// Equal reports whether two sets contain the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for n := range s.names {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
