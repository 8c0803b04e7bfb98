// Package cache is an in-memory TTL cache for generation responses.
// Expiry is checked lazily on read; there is no background sweep.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry TTL, safe for concurrent
// use.
type Cache struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func New() *Cache {
	return &Cache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

// Get returns the cached value for key, or (nil, false) if absent or
// expired. Expired entries are removed on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(it.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return it.value, true
}

// Set stores value under key for ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: value, expiresAt: c.now().Add(ttl)}
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len reports the number of entries, counting not-yet-evicted expired
// ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// RequestKey derives a deterministic cache key from a normalized
// request: the content type plus a SHA-256 over the canonical JSON of
// its fields. encoding/json sorts map keys, so identical requests yield
// identical keys and any field change yields a different one.
func RequestKey(contentType string, fields any) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal cache key fields: %w", err)
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s:%x", contentType, sum), nil
}
