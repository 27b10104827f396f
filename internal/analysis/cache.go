package analysis

import "sync"

// DefaultCacheEntries bounds the result cache when no size is configured.
const DefaultCacheEntries = 256

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type cacheItem struct {
	value      any
	hits       int
	lastAccess uint64
}

// resultCache memoizes analysis results by document hash and parameters.
// When full, the least recently accessed entry is evicted.
type resultCache struct {
	mu     sync.RWMutex
	items  map[string]*cacheItem
	max    int
	clock  uint64
	hits   int
	misses int
}

func newResultCache(max int) *resultCache {
	if max <= 0 {
		max = DefaultCacheEntries
	}
	return &resultCache{
		items: make(map[string]*cacheItem),
		max:   max,
	}
}

func (c *resultCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	item.hits++
	c.clock++
	item.lastAccess = c.clock
	return item.value, true
}

func (c *resultCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok && len(c.items) >= c.max {
		c.evictLocked()
	}
	c.clock++
	c.items[key] = &cacheItem{value: value, lastAccess: c.clock}
}

func (c *resultCache) evictLocked() {
	var oldestKey string
	var oldest uint64
	for k, item := range c.items {
		if oldestKey == "" || item.lastAccess < oldest {
			oldestKey, oldest = k, item.lastAccess
		}
	}
	delete(c.items, oldestKey)
}

func (c *resultCache) stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := CacheStats{Entries: len(c.items), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// memo returns the cached value for key or computes and stores it. Errors
// are never cached. A nil cache always computes.
//
// The cache keeps its own copy made with clone and hands out fresh copies,
// so callers may modify what they get back. A nil clone is only valid for
// types without reference fields.
func memo[T any](c *resultCache, key string, compute func() (T, error), clone func(T) T) (T, error) {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	if c != nil {
		if v, ok := c.get(key); ok {
			return clone(v.(T)), nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if c != nil {
		c.put(key, clone(v))
	}
	return v, nil
}
