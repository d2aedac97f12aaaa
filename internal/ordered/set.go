package ordered

import (
	"iter"
	"slices"
)

// SortedSet keeps unique elements sorted by a comparator. Elements that
// compare equal are duplicates.
type SortedSet[T any] struct {
	cmp   func(a, b T) int
	items []T
}

// NewSortedSet returns an empty set ordered by cmp.
func NewSortedSet[T any](cmp func(a, b T) int) *SortedSet[T] {
	return &SortedSet[T]{cmp: cmp}
}

// Len returns the number of elements.
func (s *SortedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *SortedSet[T]) search(v T) (int, bool) {
	return slices.BinarySearchFunc(s.items, v, s.cmp)
}

// Add inserts v and reports whether it was absent.
func (s *SortedSet[T]) Add(v T) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, i, v)
	return true
}

// Contains reports whether an element equal to v is present.
func (s *SortedSet[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, found := s.search(v)
	return found
}

// Delete removes the element equal to v and reports whether it was present.
func (s *SortedSet[T]) Delete(v T) bool {
	i, found := s.search(v)
	if !found {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// At returns the i-th smallest element.
func (s *SortedSet[T]) At(i int) T {
	return s.items[i]
}

// PopMin removes and returns the smallest element.
func (s *SortedSet[T]) PopMin() (T, bool) {
	var zero T
	if s.Len() == 0 {
		return zero, false
	}
	v := s.items[0]
	s.items = slices.Delete(s.items, 0, 1)
	return v, true
}

// Clear removes every element.
func (s *SortedSet[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// All yields elements in ascending order.
func (s *SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone copies the set, passing every element through cp.
func (s *SortedSet[T]) Clone(cp func(T) T) *SortedSet[T] {
	out := &SortedSet[T]{cmp: s.cmp, items: make([]T, len(s.items))}
	for i, v := range s.items {
		out.items[i] = cp(v)
	}
	return out
}
