package cache

import (
	"sync"
	"sync/atomic"
)

// MemCache is a lock-free, process-local cache, grounded on
// providers/base/cache.go's ASTCache: a sync.Map keyed by a content hash,
// with atomic hit/miss counters for observability.
type MemCache struct {
	entries sync.Map // Key.Hash() -> []string

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemCache constructs an empty in-memory cache.
func NewMemCache() *MemCache {
	return &MemCache{}
}

func (c *MemCache) Store(key Key, result []string) error {
	cp := make([]string, len(result))
	copy(cp, result)
	c.entries.Store(key.Hash(), cp)
	return nil
}

func (c *MemCache) Retrieve(key Key) ([]string, bool, error) {
	v, ok := c.entries.Load(key.Hash())
	if !ok {
		c.misses.Add(1)
		return nil, false, nil
	}
	c.hits.Add(1)
	result := v.([]string)
	cp := make([]string, len(result))
	copy(cp, result)
	return cp, true, nil
}

// Stats returns hit/miss counters for this cache.
func (c *MemCache) Stats() map[string]int64 {
	return map[string]int64{
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}
