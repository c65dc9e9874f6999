package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/tripmesh/core"
)

// defaultCacheTTL bounds how long a query's results stay fresh. Flight and
// news results go stale quickly, so the default is deliberately short.
const defaultCacheTTL = 5 * time.Minute

// Cache wraps a SearchProvider with an in-process TTL cache keyed by query
// and result limit. Results are copied on both store and retrieval so cached
// entries cannot be mutated through retained slices. It is safe for
// concurrent use; a provider failure is never cached.
type Cache struct {
	provider core.SearchProvider
	ttl      time.Duration
	clock    func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	results []core.SearchResult
	expires time.Time
}

// CacheOptions configures a Cache instance.
type CacheOptions struct {
	// TTL is how long an entry stays usable. Defaults to defaultCacheTTL.
	TTL time.Duration
}

// NewCache wraps the provider with a TTL result cache.
func NewCache(provider core.SearchProvider, optFns ...func(o *CacheOptions)) *Cache {
	opts := CacheOptions{TTL: defaultCacheTTL}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Cache{
		provider: provider,
		ttl:      opts.TTL,
		clock:    time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

// Name implements core.SearchProvider; the wrapped provider's name is kept
// so data freshness still reports the real source.
func (c *Cache) Name() string { return c.provider.Name() }

// Search implements core.SearchProvider.
func (c *Cache) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	key := fmt.Sprintf("%d:%s", maxResults, query)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.clock().Before(entry.expires) {
		return copyResults(entry.results), nil
	}

	results, err := c.provider.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{results: copyResults(results), expires: c.clock().Add(c.ttl)}
	c.mu.Unlock()

	return results, nil
}

func copyResults(results []core.SearchResult) []core.SearchResult {
	cp := make([]core.SearchResult, len(results))
	copy(cp, results)
	return cp
}
