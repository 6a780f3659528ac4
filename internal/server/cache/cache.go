// Package cache provides a typed in-memory TTL cache for the server.
// It uses patrickmn/go-cache for expiry and periodic cleanup.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache holding values of type V.
type Cache[V any] struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
// defaultTTL is the default expiration time for cache entries.
// cleanupInterval is how often expired items are removed from memory.
func New[V any](defaultTTL, cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores a value in the cache with default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value in the cache with custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// GetOrLoad returns the cached value for key, or calls load and caches its
// result. Errors are returned and not cached.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes a value from the cache.
func (c *Cache[V]) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache[V]) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache, expired ones included
// until cleanup runs.
func (c *Cache[V]) ItemCount() int {
	return c.store.ItemCount()
}
