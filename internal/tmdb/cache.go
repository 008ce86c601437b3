package tmdb

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kdimtricp/auteur/internal/metrics"
)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 30 * time.Minute
)

type cacheEntry struct {
	body     []byte
	storedAt time.Time
}

// responseCache keeps raw TMDb response bodies keyed by request path and
// query, minus credentials.
type responseCache struct {
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	now   func() time.Time
}

func newResponseCache(size int, ttl time.Duration) *responseCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// only fails on a non-positive size
		return nil
	}
	return &responseCache{cache: cache, ttl: ttl, now: time.Now}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.cache.Get(key)
	if ok && c.now().Sub(entry.storedAt) < c.ttl {
		metrics.RecordCacheLookup("tmdb", true)
		return entry.body, true
	}
	if ok {
		c.cache.Remove(key)
	}
	metrics.RecordCacheLookup("tmdb", false)
	return nil, false
}

func (c *responseCache) put(key string, body []byte) {
	if c == nil {
		return
	}
	c.cache.Add(key, cacheEntry{body: body, storedAt: c.now()})
}

func (c *responseCache) len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
