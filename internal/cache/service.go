package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/skillswap/admin-api/internal/pkg/log"
)

// GenericCacheService wraps a Cache backend with JSON serialization,
// key prefixing and service-level statistics.
type GenericCacheService struct {
	cache  Cache
	config *CacheConfig
	stats  *serviceStats
}

// serviceStats tracks cache service statistics with atomic operations
type serviceStats struct {
	hits    int64
	misses  int64
	errors  int64
	sets    int64
	deletes int64
}

// NewGenericCacheService creates a new generic cache service
func NewGenericCacheService(cache Cache, config *CacheConfig) *GenericCacheService {
	if config == nil {
		config = DefaultCacheConfig()
	}

	return &GenericCacheService{
		cache:  cache,
		config: config,
		stats:  &serviceStats{},
	}
}

// GetCached retrieves and unmarshals cached data into the target interface
func (gcs *GenericCacheService) GetCached(ctx context.Context, key string, target interface{}) error {
	if !gcs.IsEnabled() {
		atomic.AddInt64(&gcs.stats.misses, 1)
		return ErrCacheDisabled
	}

	fullKey := gcs.buildKey(key)

	data, err := gcs.cache.Get(ctx, fullKey)
	if err != nil {
		if err == ErrKeyNotFound {
			atomic.AddInt64(&gcs.stats.misses, 1)
		} else {
			atomic.AddInt64(&gcs.stats.errors, 1)
			log.Error("Cache get error for key %s: %v", fullKey, err)
		}
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache data unmarshal error for key %s: %v", fullKey, err)
		return fmt.Errorf("%w: %v", ErrDeserializationFailed, err)
	}

	atomic.AddInt64(&gcs.stats.hits, 1)
	return nil
}

// CacheData marshals and stores data in cache with TTL
func (gcs *GenericCacheService) CacheData(ctx context.Context, key string, data interface{}, ttl ...time.Duration) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	cacheTTL := gcs.config.TTL
	if len(ttl) > 0 && ttl[0] > 0 {
		cacheTTL = ttl[0]
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache data marshal error for key %s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	fullKey := gcs.buildKey(key)

	if err := gcs.cache.Set(ctx, fullKey, jsonData, cacheTTL); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set error for key %s: %v", fullKey, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.sets, 1)
	return nil
}

// InvalidatePattern removes all cache keys matching the given pattern
func (gcs *GenericCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullPattern := gcs.buildKey(pattern)

	if err := gcs.cache.DeletePattern(ctx, fullPattern); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache pattern invalidation error for pattern %s: %v", fullPattern, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// InvalidateKey removes a specific key from cache
func (gcs *GenericCacheService) InvalidateKey(ctx context.Context, key string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullKey := gcs.buildKey(key)

	if err := gcs.cache.Delete(ctx, fullKey); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache key invalidation error for key %s: %v", fullKey, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// SetAdd adds a member to the set stored at key.
func (gcs *GenericCacheService) SetAdd(ctx context.Context, key string, member string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	if err := gcs.cache.SetAdd(ctx, fullKey, member); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set add error for key %s: %v", fullKey, err)
		return err
	}
	atomic.AddInt64(&gcs.stats.sets, 1)
	return nil
}

// SetIsMember checks if a member is part of the set at key.
func (gcs *GenericCacheService) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	if !gcs.IsEnabled() {
		return false, ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	isMember, err := gcs.cache.SetIsMember(ctx, fullKey, member)
	if err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set isMember error for key %s: %v", fullKey, err)
		return false, err
	}
	return isMember, nil
}

// SetRemove removes a member from the set at key.
func (gcs *GenericCacheService) SetRemove(ctx context.Context, key string, member string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	if err := gcs.cache.SetRemove(ctx, fullKey, member); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set remove error for key %s: %v", fullKey, err)
		return err
	}
	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// GenerateHashKey creates a deterministic hash-based cache key from parameters
func (gcs *GenericCacheService) GenerateHashKey(prefix string, params map[string]interface{}) string {
	h := sha256.New()
	h.Write([]byte(prefix + ":"))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]
		var valueStr string

		switch val := v.(type) {
		case string:
			valueStr = val
		case nil:
			valueStr = "nil"
		default:
			if jsonVal, err := json.Marshal(val); err == nil {
				valueStr = string(jsonVal)
			} else {
				valueStr = fmt.Sprintf("%v", val)
			}
		}

		h.Write([]byte(fmt.Sprintf("%s=%s;", k, valueStr)))
	}

	hash := hex.EncodeToString(h.Sum(nil))[:16]
	return fmt.Sprintf("%s:%s", prefix, hash)
}

// GetStats returns cache service statistics
func (gcs *GenericCacheService) GetStats() CacheStats {
	cacheStats := gcs.cache.Stats()

	hits := atomic.LoadInt64(&gcs.stats.hits)
	misses := atomic.LoadInt64(&gcs.stats.misses)
	total := hits + misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return CacheStats{
		Hits:        hits,
		Misses:      misses,
		HitRatio:    hitRatio,
		Keys:        cacheStats.Keys,
		MemoryUsage: cacheStats.MemoryUsage,
		Evictions:   cacheStats.Evictions,
	}
}

// Close closes the cache service
func (gcs *GenericCacheService) Close() error {
	if gcs.cache != nil {
		return gcs.cache.Close()
	}
	return nil
}

// IsEnabled returns whether caching is enabled
func (gcs *GenericCacheService) IsEnabled() bool {
	return gcs.config.Enabled && gcs.cache != nil
}

// GetConfig returns the cache configuration
func (gcs *GenericCacheService) GetConfig() *CacheConfig {
	return gcs.config
}

// buildKey constructs the full cache key with prefix
func (gcs *GenericCacheService) buildKey(key string) string {
	if gcs.config.Prefix == "" {
		return key
	}

	prefix := gcs.config.Prefix
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return prefix + key
}
