// Package cache implements a small in-memory TTL cache used to avoid
// re-fetching slow upstream lookups (city codes, hotel lists) on every
// request. Entries expire lazily on read.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	data      any
	timestamp time.Time
	ttl       time.Duration
}

func (e *entry) isExpired() bool {
	return time.Since(e.timestamp) > e.ttl
}

// TTL is a concurrency-safe map with per-entry time-to-live.
type TTL struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	defaultTTL time.Duration
}

// New creates a TTL cache. A zero defaultTTL falls back to 10 seconds.
func New(defaultTTL time.Duration) *TTL {
	if defaultTTL == 0 {
		defaultTTL = 10 * time.Second
	}
	return &TTL{
		entries:    make(map[string]*entry),
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value for key, or false if the key is absent or
// its entry has expired.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.entries[key]; ok && !e.isExpired() {
		return e.data, true
	}
	return nil, false
}

// Set stores a value under key. A zero ttl uses the cache's default.
func (c *TTL) Set(key string, data any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	c.entries[key] = &entry{
		data:      data,
		timestamp: time.Now(),
		ttl:       ttl,
	}
}

// Flush discards every entry.
func (c *TTL) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len reports the number of stored entries, expired or not.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
