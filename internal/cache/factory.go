package cache

import (
	"fmt"

	"github.com/skillswap/admin-api/internal/platform/config"
)

// NewCache creates a cache instance based on the provided configuration.
func NewCache(cfg *CacheConfig) (Cache, error) {
	if cfg == nil {
		cfg = DefaultCacheConfig()
	}

	if !cfg.Backend.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, cfg.Backend)
	}

	switch cfg.Backend {
	case CacheTypeMemory:
		return NewMemoryCache(cfg), nil
	case CacheTypeRedis:
		return NewRedisCache(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, cfg.Backend)
	}
}

// ConfigFromApp maps the application cache configuration onto the cache
// package's own config type.
func ConfigFromApp(app config.CacheConfig) *CacheConfig {
	cfg := DefaultCacheConfig()
	cfg.Enabled = app.Enabled
	cfg.Backend = CacheType(app.Backend)
	cfg.Prefix = app.Prefix
	if app.TTL > 0 {
		cfg.TTL = app.TTL
	}
	if app.MaxMemory > 0 {
		cfg.MaxMemory = app.MaxMemory
	}
	if app.CleanupInterval > 0 {
		cfg.CleanupInterval = app.CleanupInterval
	}
	cfg.Redis = RedisConfig{
		Address:      app.Redis.Address,
		Password:     app.Redis.Password,
		Database:     app.Redis.Database,
		PoolSize:     app.Redis.PoolSize,
		MinIdleConns: app.Redis.MinIdleConns,
		MaxConnAge:   app.Redis.MaxConnAge,
	}
	return cfg
}

// MustNewCache creates a cache or panics if configuration is invalid
func MustNewCache(cfg *CacheConfig) Cache {
	c, err := NewCache(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create cache: %v", err))
	}
	return c
}
