package sorted

import (
	"cmp"
	"iter"
	"slices"
)

// Entry is a single key/value pair of a Map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is a slice-backed map that keeps its entries sorted by key.
//
// Lookups are O(log n); inserts and deletes are O(n). Iteration is always
// in ascending key order. The zero value is not usable, create maps with
// New or NewOrdered.
type Map[K, V any] struct {
	cmp     func(a, b K) int
	entries []Entry[K, V]
}

// New creates an empty map ordered by compare.
func New[K, V any](compare func(a, b K) int) *Map[K, V] {
	return &Map[K, V]{cmp: compare}
}

// NewOrdered creates an empty map for a naturally ordered key type.
func NewOrdered[K cmp.Ordered, V any]() *Map[K, V] {
	return New[K, V](cmp.Compare[K])
}

// Compare returns the ordering function of the map.
func (m *Map[K, V]) Compare() func(a, b K) int {
	return m.cmp
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the entries in ascending key order.
// The returned slice aliases the map and must not be modified.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	if m == nil {
		return nil
	}
	return m.entries
}

func (m *Map[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(m.entries, key, func(e Entry[K, V], k K) int {
		return m.cmp(e.Key, k)
	})
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	i, ok := m.search(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries[i].Value, true
}

// Set stores value under key, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	i, ok := m.search(key)
	if ok {
		m.entries[i].Value = value
		return
	}
	m.entries = slices.Insert(m.entries, i, Entry[K, V]{Key: key, Value: value})
}

// GetOrInsert returns the value stored for key. If key is absent, create
// is called and its result is stored and returned.
func (m *Map[K, V]) GetOrInsert(key K, create func() V) V {
	i, ok := m.search(key)
	if ok {
		return m.entries[i].Value
	}
	v := create()
	m.entries = slices.Insert(m.entries, i, Entry[K, V]{Key: key, Value: v})
	return v
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	i, ok := m.search(key)
	if !ok {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

// Clear removes every entry while keeping the allocated storage.
func (m *Map[K, V]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
}

// All iterates over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of the map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{cmp: m.cmp, entries: slices.Clone(m.entries)}
}
