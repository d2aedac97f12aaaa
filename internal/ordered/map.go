package ordered

import (
	"iter"
	"slices"
)

// Map is a string-keyed map that remembers insertion order.
// Re-setting an existing key keeps its position.
type Map[V any] struct {
	index  map[string]int
	keys   []string
	values []V
}

// NewMap returns an empty map with room for n entries.
func NewMap[V any](n int) *Map[V] {
	return &Map[V]{
		index:  make(map[string]int, n),
		keys:   make([]string, 0, n),
		values: make([]V, 0, n),
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Set stores v under key, appending key when it is new.
func (m *Map[V]) Set(key string, v V) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.values[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, v)
}

// Delete removes key and returns its value.
func (m *Map[V]) Delete(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		return zero, false
	}
	v := m.values[i]
	delete(m.index, key)
	m.keys = slices.Delete(m.keys, i, i+1)
	m.values = slices.Delete(m.values, i, i+1)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return v, true
}

// At returns the i-th entry in insertion order.
func (m *Map[V]) At(i int) (string, V) {
	return m.keys[i], m.values[i]
}

// Clear removes every entry.
func (m *Map[V]) Clear() {
	clear(m.index)
	m.keys = m.keys[:0]
	clear(m.values)
	m.values = m.values[:0]
}

// Keys yields keys in insertion order.
func (m *Map[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// All yields entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}

// Clone copies the map, passing every value through cp.
func (m *Map[V]) Clone(cp func(V) V) *Map[V] {
	out := NewMap[V](m.Len())
	for k, v := range m.All() {
		out.Set(k, cp(v))
	}
	return out
}
