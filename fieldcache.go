// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"github.com/gogpu/dial/internal/cache"
)

// DefaultFieldCacheCapacity is the number of configurations the shared
// field cache keeps.
const DefaultFieldCacheCapacity = 4

// fieldKey identifies one field build.
type fieldKey struct {
	width, height int
	geometry      uint64
}

// FieldCache memoizes Fields by (width, height, geometry hash). A dial
// looks its fields up once per size or configuration change; repaints
// reuse the cached value.
//
// FieldCache is safe for concurrent use.
type FieldCache struct {
	memo *cache.Memo[fieldKey, *Fields]
}

// NewFieldCache creates a cache holding at most capacity field sets.
func NewFieldCache(capacity int) *FieldCache {
	return &FieldCache{memo: cache.New[fieldKey, *Fields](capacity)}
}

// sharedFieldCache is used by dials created without WithFieldCache.
var sharedFieldCache = NewFieldCache(DefaultFieldCacheCapacity)

// Fields returns the fields for g, building them on the first request.
func (c *FieldCache) Fields(g *Geometry) *Fields {
	key := fieldKey{width: g.Width, height: g.Height, geometry: g.Hash()}
	fields, hit := c.memo.GetOrCreate(key, func() *Fields {
		Logger().Debug("dial: building polar field", "width", g.Width, "height", g.Height)
		return BuildFields(g)
	})
	if hit {
		Logger().Debug("dial: polar field cache hit", "width", g.Width, "height", g.Height)
	}
	return fields
}

// Invalidate drops the fields built for g.
func (c *FieldCache) Invalidate(g *Geometry) {
	c.memo.Delete(fieldKey{width: g.Width, height: g.Height, geometry: g.Hash()})
}

// Stats returns the cache counters. Misses equal the number of builds.
func (c *FieldCache) Stats() cache.Stats {
	return c.memo.Stats()
}
