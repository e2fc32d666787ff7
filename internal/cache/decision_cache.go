package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DecisionCache is a capacity-bounded LRU cache of web-search decisions
// keyed by the literal query text. Keys are exact and case-sensitive:
// queries that differ only in whitespace or casing occupy separate
// entries. When the cache is full the least recently used entry is
// evicted, so memory stays bounded for the process lifetime.
type DecisionCache struct {
	entries *lru.Cache[string, bool]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewDecisionCache creates a DecisionCache holding at most size entries
func NewDecisionCache(size int) (*DecisionCache, error) {
	entries, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	return &DecisionCache{entries: entries}, nil
}

// Get returns the cached decision for query and whether one was present
func (c *DecisionCache) Get(query string) (bool, bool) {
	needed, ok := c.entries.Get(query)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return needed, ok
}

// Put stores the decision for query, evicting the oldest entry if full
func (c *DecisionCache) Put(query string, needed bool) {
	c.entries.Add(query, needed)
}

// Len returns the number of cached decisions
func (c *DecisionCache) Len() int {
	return c.entries.Len()
}

// Stats returns the hit and miss counters
func (c *DecisionCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
