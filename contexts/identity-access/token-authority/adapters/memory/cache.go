package memory

import (
	"context"
	"sync"
	"time"

	"aegis/contexts/identity-access/token-authority/ports"
)

// Cache is the in-memory Tier-1 cache. Entries expire lazily against
// the module clock, so Advance-driven tests see TTLs elapse.
type Cache struct {
	clock ports.Clock

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

func NewCache(clock ports.Clock) *Cache {
	return &Cache{
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
	return nil
}

func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.After(c.clock.Now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Count(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.clock.Now()
	var live int64
	for _, entry := range c.entries {
		if entry.expiresAt.After(now) {
			live++
		}
	}
	return live, nil
}

func (c *Cache) Close() error { return nil }
