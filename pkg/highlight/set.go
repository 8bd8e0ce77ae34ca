package highlight

import "slices"

// Set is an insertion-ordered set of keys.
type Set struct {
	index map[string]int
	keys  []string
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add inserts key. Reports whether it was new.
func (s *Set) Add(key string) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
	return true
}

// Has reports whether key is present.
func (s *Set) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Delete removes key. Reports whether it was present.
func (s *Set) Delete(key string) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.keys = slices.Delete(s.keys, i, i+1)
	delete(s.index, key)
	for j := i; j < len(s.keys); j++ {
		s.index[s.keys[j]] = j
	}
	return true
}

// Len returns the number of keys.
func (s *Set) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string { return slices.Clone(s.keys) }

// Clear removes every key.
func (s *Set) Clear() {
	clear(s.index)
	s.keys = s.keys[:0]
}
