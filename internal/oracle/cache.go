package oracle

import (
	"context"
	"sync"
	"time"
)

const quoteTTL = 30 * time.Second

type cacheEntry struct {
	priceCents uint64
	expiresAt  time.Time
}

type quoteCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newQuoteCache() *quoteCache {
	return &quoteCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *quoteCache) get(symbol string) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[symbol]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.priceCents, true
}

func (c *quoteCache) set(symbol string, priceCents uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[symbol] = cacheEntry{
		priceCents: priceCents,
		expiresAt:  time.Now().Add(quoteTTL),
	}
}

// CachedSource decorates a QuoteSource with a per-symbol TTL cache.
type CachedSource struct {
	next  QuoteSource
	cache *quoteCache
}

// NewCachedSource wraps next with quote caching.
func NewCachedSource(next QuoteSource) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: newQuoteCache(),
	}
}

func (s *CachedSource) PriceCents(ctx context.Context, symbol string) (uint64, error) {
	if cents, ok := s.cache.get(symbol); ok {
		return cents, nil
	}

	cents, err := s.next.PriceCents(ctx, symbol)
	if err != nil {
		return 0, err
	}

	s.cache.set(symbol, cents)
	return cents, nil
}
