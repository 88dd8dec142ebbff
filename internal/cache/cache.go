// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import "sync"

// DefaultCapacity is used when New is given a capacity <= 0.
const DefaultCapacity = 8

// Memo is a thread-safe LRU cache of lazily built values.
type Memo[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	head     *entry[K, V] // most recently used
	tail     *entry[K, V] // least recently used
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64
}

// entry is both the map value and a node of the recency list.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// Stats is a snapshot of memo counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New creates a memo holding at most capacity values.
func New[K comparable, V any](capacity int) *Memo[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memo[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it most recently used.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses++
		var zero V
		return zero, false
	}
	m.hits++
	m.moveToFront(e)
	return e.value, true
}

// GetOrCreate returns the value for key, calling build to create it on a
// miss. build runs under the lock so a key is never built twice.
// The second result reports whether the value was already cached.
func (m *Memo[K, V]) GetOrCreate(key K, build func() V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		m.hits++
		m.moveToFront(e)
		return e.value, true
	}
	m.misses++

	e := &entry[K, V]{key: key, value: build()}
	m.entries[key] = e
	m.pushFront(e)
	for len(m.entries) > m.capacity {
		m.evict()
	}
	return e.value, false
}

// Delete removes key. It reports whether the key was present.
func (m *Memo[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false
	}
	m.unlink(e)
	delete(m.entries, key)
	return true
}

// Purge drops every entry. Counters are kept.
func (m *Memo[K, V]) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[K]*entry[K, V])
	m.head, m.tail = nil, nil
}

// Len returns the number of cached values.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns the current counters.
func (m *Memo[K, V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Len:       len(m.entries),
		Capacity:  m.capacity,
		Hits:      m.hits,
		Misses:    m.misses,
		Evictions: m.evictions,
	}
}

// evict drops the least recently used entry. Caller must hold m.mu.
func (m *Memo[K, V]) evict() {
	e := m.tail
	if e == nil {
		return
	}
	m.unlink(e)
	delete(m.entries, e.key)
	m.evictions++
}

func (m *Memo[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = m.head
	if m.head != nil {
		m.head.prev = e
	}
	m.head = e
	if m.tail == nil {
		m.tail = e
	}
}

func (m *Memo[K, V]) moveToFront(e *entry[K, V]) {
	if e == m.head {
		return
	}
	m.unlink(e)
	m.pushFront(e)
}

func (m *Memo[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
