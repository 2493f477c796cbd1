package rates

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched rate stays fresh
const DefaultCacheTTL = time.Hour

// Cache holds the last fetched rate with an explicit expiry. It is owned
// and passed in by the caller rather than kept as package state, so each
// consumer controls its own lifetime.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewCache creates a cache with the given TTL; ttl <= 0 uses the default
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns the cached rate and whether it is still fresh
func (c *Cache) Get() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl {
		return 0, false
	}
	return c.rate, true
}

// Set stores a rate with the current time as its fetch instant
func (c *Cache) Set(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
	c.fetchedAt = c.now()
}
