// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authority caches resolved author identities for one discovery
// session: external authority identifier (GND number) → display name.
package authority

import "sync"

// Cache is a session-scoped, write-once mapping from authority identifier to
// canonical display name. Construct one per session and pass it by reference
// to the extractor and orchestrator; there is no eviction.
type Cache struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{names: make(map[string]string)}
}

// Resolve returns the display name registered for id, if any.
func (c *Cache) Resolve(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[id]
	return name, ok
}

// Register records id → name and reports whether the entry was written.
// An identifier already present keeps its first name; later registrations
// are no-ops.
func (c *Cache) Register(id, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.names[id]; ok {
		return false
	}
	c.names[id] = name
	return true
}

// Len returns the number of cached identities.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
