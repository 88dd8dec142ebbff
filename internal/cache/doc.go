// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a small generic LRU memo table.
//
// The dial keeps one expensive value per widget configuration (the polar
// field and its static masks). Memo builds a value once per key and hands
// the same value back on every later lookup:
//
//	m := cache.New[key, *Fields](4)
//	fields, hit := m.GetOrCreate(k, func() *Fields { return build(k) })
//
// When more than capacity keys are live, the least recently used entry
// is evicted. Memo is safe for concurrent use and must not be copied
// after creation.
package cache
