package yahoo

import (
	"sync"
	"time"
)

// Cache is an in-memory TTL cache for adapter responses. It is constructed
// explicitly and injected into a Client, one per process lifecycle, so cache
// lifetime is visible at the call site instead of hiding in package state.
//
// Entries are read-check-then-fetch-then-write. Concurrent callers may fetch
// the same key twice; the re-fetch is idempotent so the race is harmless.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// get returns the unexpired value stored under key.
func (c *Cache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// put stores a value under key for the given lifetime.
func (c *Cache) put(key string, value any, ttl time.Duration) {
	if c == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
