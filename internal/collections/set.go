// Package collections holds small generic containers.
package collections

import "fmt"

// Set is a generic set that remembers insertion order
type Set[T comparable] struct {
	index map[T]struct{}
	order []T
}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) *Set[T] {
	s := &Set[T]{index: map[T]struct{}{}}
	s.Add(vs...)
	return s
}

// Add adds values that are not yet members and reports how many were new
func (s *Set[T]) Add(vs ...T) int {
	added := 0
	for _, v := range vs {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = struct{}{}
		s.order = append(s.order, v)
		added++
	}
	return added
}

// Has checks if the set contains the given value
func (s *Set[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of members
func (s *Set[T]) Len() int {
	return len(s.order)
}

// Members returns the values in the order they were first added
func (s *Set[T]) Members() []T {
	return append([]T(nil), s.order...)
}

// String returns a string representation of the set
func (s *Set[T]) String() string {
	return fmt.Sprintf("%v", s.order)
}
