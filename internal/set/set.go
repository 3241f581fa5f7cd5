// Package set provides a generic, order-independent set used to
// compare the registry and legacy witness verdicts: two verdicts agree
// iff their sets of refusing invariant IDs are equal, regardless of
// the order either witness evaluated them in.
package set

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// minSetSize is the minimum backing-map capacity Add uses when it
// allocates a nil set; NewSet uses the requested size as given.
const minSetSize = 8

// Set is a set of comparable elements.
type Set[T comparable] map[T]struct{}

// Of returns a Set initialized with elts.
func Of[T comparable](elts ...T) Set[T] {
	s := NewSet[T](len(elts))
	s.Add(elts...)
	return s
}

// NewSet returns a new set with initial capacity size.
func NewSet[T comparable](size int) Set[T] {
	if size < 0 {
		return Set[T]{}
	}
	return make(map[T]struct{}, size)
}

func (s *Set[T]) resize(size int) {
	if *s == nil {
		if size < minSetSize {
			size = minSetSize
		}
		*s = make(map[T]struct{}, size)
	}
}

// Add inserts elts into the set.
func (s *Set[T]) Add(elts ...T) {
	s.resize(2 * len(elts))
	for _, elt := range elts {
		(*s)[elt] = struct{}{}
	}
}

// Contains reports whether elt is in the set.
func (s Set[T]) Contains(elt T) bool {
	_, ok := s[elt]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[_]) Len() int {
	return len(s)
}

// List returns the set's elements in unspecified order.
func (s Set[T]) List() []T {
	return maps.Keys(s)
}

// Equals reports whether s and other contain exactly the same elements.
// Evaluation order of either witness never affects this comparison.
func (s Set[T]) Equals(other Set[T]) bool {
	return maps.Equal(s, other)
}

// SortedStrings returns the set's elements sorted lexicographically.
// Used to render verdict sets as neutral, reproducible identifier lists
// in parity-divergence diagnostics.
func SortedStrings(s Set[string]) []string {
	out := s.List()
	sort.Strings(out)
	return out
}

// String returns a deterministic, sorted string representation for
// string-keyed sets; useful in test failure messages and logs.
func String(s Set[string]) string {
	sorted := SortedStrings(s)
	var sb strings.Builder
	sb.WriteString("{")
	for i, elt := range sorted {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elt)
	}
	sb.WriteString("}")
	return sb.String()
}
