package inspector

import (
	"sync"
	"time"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
)

// cacheKey identifies one point query against one target generation.
type cacheKey struct {
	Generation uint64
	X, Y       int
}

// cacheEntry holds a cached resolution with its timestamp.
type cacheEntry struct {
	desc      model.ElementDescriptor
	found     bool
	timestamp time.Time
}

// maxCacheEntries bounds the cache; expired entries are pruned first and the
// whole map is dropped if that is not enough.
const maxCacheEntries = 1024

// pointCache provides a TTL-based cache for point resolutions. Agents tend
// to ask about the same point several times in a row; the UI's hover loop
// runs with the cache disabled.
type pointCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// newPointCache creates a new cache. A ttl of 0 disables caching.
func newPointCache(ttl time.Duration) *pointCache {
	return &pointCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func keyFor(generation uint64, p geom.Point) cacheKey {
	return cacheKey{Generation: generation, X: int(p.X), Y: int(p.Y)}
}

// resolve returns the cached resolution if within TTL, otherwise calls fn.
func (c *pointCache) resolve(generation uint64, p geom.Point, fn func() (model.ElementDescriptor, bool)) (model.ElementDescriptor, bool) {
	if c.ttl == 0 {
		return fn()
	}
	key := keyFor(generation, p)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.desc.Clone(), entry.found
	}
	c.mu.Unlock()

	desc, found := fn()

	c.mu.Lock()
	if len(c.entries) >= maxCacheEntries {
		c.pruneLocked()
	}
	c.entries[key] = cacheEntry{desc: desc.Clone(), found: found, timestamp: c.now()}
	c.mu.Unlock()

	return desc, found
}

// pruneLocked drops expired entries, or everything when all are fresh.
// Callers hold c.mu.
func (c *pointCache) pruneLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.timestamp) >= c.ttl {
			delete(c.entries, k)
		}
	}
	if len(c.entries) >= maxCacheEntries {
		c.entries = make(map[cacheKey]cacheEntry)
	}
}

// invalidateAll clears the entire cache.
func (c *pointCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// len reports the number of cached entries.
func (c *pointCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
