package goanalyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// astCache is a lock-free cache of parsed Go source trees, keyed by a
// content hash. An entry older than maxAge is dropped when it is next
// looked up; there is no background sweep.
type astCache struct {
	entries sync.Map
	maxAge  time.Duration
	hits    atomic.Int64
	misses  atomic.Int64
}

type cachedTree struct {
	tree      *sitter.Tree
	timestamp time.Time
}

func newASTCache(maxAge time.Duration) *astCache {
	return &astCache{maxAge: maxAge}
}

func hashSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (c *astCache) getOrParse(parser *sitter.Parser, source []byte) (*sitter.Tree, error) {
	key := hashSource(source)
	if cached, ok := c.entries.Load(key); ok {
		entry := cached.(cachedTree)
		if time.Since(entry.timestamp) <= c.maxAge {
			c.hits.Add(1)
			return entry.tree, nil
		}
		c.entries.Delete(key)
	}

	c.misses.Add(1)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	c.entries.Store(key, cachedTree{tree: tree, timestamp: time.Now()})
	return tree, nil
}

// Stats returns hit/miss counters for this cache.
func (c *astCache) Stats() map[string]int64 {
	return map[string]int64{
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}
