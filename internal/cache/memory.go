package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrExists is returned by Add when the key is already present
var ErrExists = errors.New("cache: key already exists")

// NoExpiration keeps entries until they are deleted
const NoExpiration = gocache.NoExpiration

// MemoryCache is an in-memory TTL store
type MemoryCache struct {
	cache *gocache.Cache

	// mu orders Acquire against release so a release never removes an
	// entry added by a later holder
	mu  sync.Mutex
	seq atomic.Uint64
}

// NewMemoryCache creates a new memory cache. Entries expire after ttl even
// if never deleted, unless ttl is NoExpiration.
func NewMemoryCache(ttl time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Add stores value only if key is absent or expired
func (c *MemoryCache) Add(key string, value any) error {
	if err := c.cache.Add(key, value, gocache.DefaultExpiration); err != nil {
		return ErrExists
	}
	return nil
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Acquire implements Guard. Each hold stores its own token and release only
// deletes the entry while that token is still there. An expired hold can be
// taken over, and the old holder's release then leaves the new one alone.
func (c *MemoryCache) Acquire(key string) (func(), bool) {
	token := c.seq.Add(1)

	c.mu.Lock()
	err := c.Add(key, token)
	c.mu.Unlock()
	if err != nil {
		return func() {}, false
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if held, ok := c.Get(key); ok && held == token {
			c.Delete(key)
		}
	}, true
}
