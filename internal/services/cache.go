package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// cacheKeyPrefix is the Redis key prefix for cached data
	cacheKeyPrefix = "cache:"
	// DefaultCacheTTL keeps catalog reads fresh without hammering Mongo
	DefaultCacheTTL = 15 * time.Minute
)

// CacheService is a best-effort JSON cache on Redis. A nil client disables
// caching entirely, so the app runs unchanged when Redis is unavailable.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// Get retrieves a value from cache. Returns false on miss or any cache error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	val, err := c.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return false // Cache miss, not an error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

// Set stores a value in cache with the default TTL. Failures are ignored;
// the cache never makes a request fail.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKeyPrefix+key, jsonData, DefaultCacheTTL)
}

// CacheKey generates a cache key for a specific resource.
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}
