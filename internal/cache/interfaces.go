package cache

import (
	"context"
	"errors"
	"time"
)

// Cache defines the generic cache interface for all cache implementations
type Cache interface {
	// Get retrieves a value from cache by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching the given pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Increment atomically increments a numeric value
	Increment(ctx context.Context, key string, delta int64) (int64, error)

	// SetAdd adds a member to the set stored at key
	SetAdd(ctx context.Context, key string, member string) error

	// SetIsMember checks if a member is part of the set at key
	SetIsMember(ctx context.Context, key string, member string) (bool, error)

	// SetRemove removes a member from the set at key
	SetRemove(ctx context.Context, key string, member string) error

	// Close closes the cache connection
	Close() error

	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheConfig holds configuration for cache instances
type CacheConfig struct {
	// Enabled indicates if caching is enabled
	Enabled bool `json:"enabled"`

	// TTL is the default time-to-live for cache entries
	TTL time.Duration `json:"ttl"`

	// Prefix is added to all cache keys
	Prefix string `json:"prefix"`

	// Backend specifies the cache backend (memory, redis)
	Backend CacheType `json:"backend"`

	// MaxMemory is the maximum memory usage for memory cache (in bytes)
	MaxMemory int64 `json:"maxMemory"`

	// CleanupInterval for expired item cleanup
	CleanupInterval time.Duration `json:"cleanupInterval"`

	// Redis configuration
	Redis RedisConfig `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `json:"address"`

	// Password for Redis authentication
	Password string `json:"password"`

	// Database number
	Database int `json:"database"`

	// PoolSize is the maximum number of connections
	PoolSize int `json:"poolSize"`

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int `json:"minIdleConns"`

	// MaxConnAge is the maximum connection age
	MaxConnAge time.Duration `json:"maxConnAge"`
}

// CacheStats provides cache performance statistics
type CacheStats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRatio    float64 `json:"hitRatio"`
	Keys        int64   `json:"keys"`
	MemoryUsage int64   `json:"memoryUsage"`
	Evictions   int64   `json:"evictions"`
}

// Common cache errors
var (
	// ErrKeyNotFound is returned when a key is not found in cache
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheUnavailable is returned when cache backend is unavailable
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrInvalidCacheType is returned when cache type is invalid
	ErrInvalidCacheType = errors.New("invalid cache type")

	// ErrCacheDisabled is returned when cache is disabled
	ErrCacheDisabled = errors.New("cache disabled")

	// ErrSerializationFailed is returned when data serialization fails
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrDeserializationFailed is returned when data deserialization fails
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		TTL:             15 * time.Minute,
		Prefix:          "skillswap:",
		Backend:         CacheTypeMemory,
		MaxMemory:       100 * 1024 * 1024, // 100MB
		CleanupInterval: 5 * time.Minute,
		Redis: RedisConfig{
			Address:      "localhost:6379",
			Password:     "",
			Database:     0,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxConnAge:   30 * time.Minute,
		},
	}
}

// CacheType represents different cache backend types
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache
	CacheTypeMemory CacheType = "memory"

	// CacheTypeRedis represents Redis cache
	CacheTypeRedis CacheType = "redis"
)

// IsValid checks if the cache type is valid
func (ct CacheType) IsValid() bool {
	switch ct {
	case CacheTypeMemory, CacheTypeRedis:
		return true
	default:
		return false
	}
}
