// Package cache is a string-keyed byte cache with optional per-entry TTL
// and background expiry sweeping.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultSweepInterval is how often expired entries are swept out when New
// is given a non-positive interval.
const DefaultSweepInterval = 5 * time.Second

// Cache stores byte values under string keys. Entries with a TTL expire
// on read immediately and are physically removed by the background sweep.
// Safe for concurrent use.
type Cache struct {
	c *gocache.Cache
}

// New returns an empty cache sweeping expired entries every
// sweepInterval (DefaultSweepInterval when non-positive).
func New(sweepInterval time.Duration) *Cache {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Cache{c: gocache.New(gocache.NoExpiration, sweepInterval)}
}

// Set stores value under key. A positive ttl expires the entry after that
// duration; ttl <= 0 stores it until removed.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.c.Set(key, value, ttl)
}

// Get returns the value under key. ok is false for missing and expired
// entries.
func (c *Cache) Get(key string) (value []byte, ok bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Remove deletes the entry under key. Removing a missing key is a no-op.
func (c *Cache) Remove(key string) {
	c.c.Delete(key)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.c.Flush()
}

// Len returns the number of stored entries, expired-but-unswept ones
// included.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}
