// ABOUTME: In-memory title cache backed by patrickmn/go-cache
// ABOUTME: Values are copied on the way in and out; expired entries are purged periodically

package memory

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are purged
const DefaultCleanupInterval = 10 * time.Minute

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("key not found")

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *cache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(DefaultCleanupInterval)
}

// NewMemoryCacheWithCleanup creates a cache that purges expired entries every interval
func NewMemoryCacheWithCleanup(interval time.Duration) *MemoryCache {
	return &MemoryCache{items: cache.New(cache.NoExpiration, interval)}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found := c.items.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	stored, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), stored...), nil
}

// Set stores a value in the cache with the given TTL. A zero TTL never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	expiration := ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
	}
	c.items.Set(key, append([]byte(nil), value...), expiration)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items.Delete(key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
