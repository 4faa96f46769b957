package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set implementation for comparable types.
//
// It provides efficient membership tests and insertion using a
// map[T]struct{} internally. This type is mutable: Add modifies the
// set in place. Set is not safe for concurrent use.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set and optionally inserts the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	for _, d := range data {
		set[d] = struct{}{}
	}
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Has reports whether value is a member of the set.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Missing returns, in input order, the elements of values that are not in
// the set. Duplicates in values are reported once.
func (s Set[T]) Missing(values []T) []T {
	var (
		missing  []T
		reported = make(map[T]struct{})
	)
	for _, val := range values {
		if s.Has(val) {
			continue
		}
		if _, ok := reported[val]; ok {
			continue
		}

		reported[val] = struct{}{}
		missing = append(missing, val)
	}
	return missing
}

// ToIter returns an iterator over all elements in the set.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns a slice containing all elements in the set.
//
// The order of elements is not guaranteed.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
