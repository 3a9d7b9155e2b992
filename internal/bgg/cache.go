package bgg

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a detail lookup is served from memory.
const DefaultCacheTTL = 24 * time.Hour

// Cache maps BGG ids to detail lookups. It has no size bound; entries leave
// only through Sweep or when the process exits.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates an empty cache. A nil now defaults to time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns a copy of the cached details for id if the entry has not expired.
func (c *Cache) Get(id string) (*GameDetails, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || !e.Valid(c.now()) {
		return nil, false
	}
	return e.Data.Clone(), true
}

// Set stores details under id, expiring ttl from now.
func (c *Cache) Set(id string, d *GameDetails) {
	now := c.now()
	entry := CacheEntry{
		Data:      *d.Clone(),
		CachedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.mu.Lock()
	c.entries[id] = entry
	c.mu.Unlock()
}

// Entry returns the raw entry for id, expired or not.
func (c *Cache) Entry(id string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes every entry whose expiry is at or before now and returns how
// many were removed.
func (c *Cache) Sweep() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if !e.ExpiresAt.After(now) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
