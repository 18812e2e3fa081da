package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a small in-memory cache with per-entry expiry and a max size.
// It is injected into consumers rather than held as package state.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &TTLCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// evictLocked drops expired entries first; if none are expired it clears the
// whole map rather than tracking access order for such a small cache.
func (c *TTLCache) evictLocked() {
	now := c.now()
	removed := false
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed = true
		}
	}
	if !removed {
		c.entries = make(map[string]entry)
	}
}
