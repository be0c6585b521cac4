package csync

import (
	"cmp"
	"slices"
	"sync"
)

// Map is a thread-safe map implementation with generic types.
// It uses a RWMutex for concurrent read access and exclusive write access.
type Map[K cmp.Ordered, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

// NewMap creates a new thread-safe map
func NewMap[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Set stores a key-value pair in the map
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Get retrieves a value by key, returns the value and whether it exists
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// Delete removes a key-value pair from the map
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len returns the number of key-value pairs in the map
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// SortedKeys returns all keys in ascending order.
func (m *Map[K, V]) SortedKeys() []K {
	m.mu.RLock()
	keys := make([]K, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Ordered returns the values sorted by key. The result is a copy, so callers
// may invoke the values without holding the map lock.
func (m *Map[K, V]) Ordered() []V {
	keys := m.SortedKeys()

	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]V, 0, len(keys))
	for _, key := range keys {
		// Keys deleted between the two lock sections are skipped.
		if value, ok := m.data[key]; ok {
			values = append(values, value)
		}
	}
	return values
}

// Clear removes all key-value pairs from the map
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[K]V)
}
