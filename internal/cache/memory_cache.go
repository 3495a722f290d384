package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// cacheItem represents an item in the memory cache
type cacheItem struct {
	value      []byte
	members    map[string]struct{}
	expiration time.Time
}

// MemoryCache implements Cache using in-memory storage. Sets are supported
// so the session allowlist works without a Redis deployment.
type MemoryCache struct {
	items         map[string]*cacheItem
	mutex         sync.RWMutex
	maxMemory     int64
	currentMemory int64
	hits          int64
	misses        int64
	evictions     int64
	cleanupTicker *time.Ticker
	cleanupDone   chan bool
	config        *CacheConfig
	closed        bool
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache := &MemoryCache{
		items:       make(map[string]*cacheItem),
		maxMemory:   config.MaxMemory,
		cleanupDone: make(chan bool),
		config:      config,
	}

	cache.cleanupTicker = time.NewTicker(config.CleanupInterval)
	go cache.startCleanup()

	return cache
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	item, exists := c.items[key]
	closed := c.closed
	c.mutex.RUnlock()

	if closed {
		return nil, ErrCacheDisabled
	}

	if !exists || time.Now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	newItem := &cacheItem{
		value:      valueCopy,
		expiration: time.Now().Add(ttl),
	}

	c.replaceItem(key, newItem)
	c.evictIfNeeded()
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, exists := c.items[key]; exists {
		delete(c.items, key)
		c.currentMemory -= c.itemMemory(key, item)
	}
	return nil
}

// DeletePattern removes all keys matching the given pattern (* wildcard)
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.items {
		if matchPattern(key, pattern) {
			delete(c.items, key)
			c.currentMemory -= c.itemMemory(key, item)
		}
	}
	return nil
}

// Exists checks if a key exists in cache
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return false, nil
	}
	return true, nil
}

// Increment atomically increments a numeric value
func (c *MemoryCache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var currentValue int64
	if item, exists := c.items[key]; exists && !time.Now().After(item.expiration) {
		if val, err := strconv.ParseInt(string(item.value), 10, 64); err == nil {
			currentValue = val
		}
	}

	newValue := currentValue + delta
	newItem := &cacheItem{
		value:      []byte(strconv.FormatInt(newValue, 10)),
		expiration: time.Now().Add(c.config.TTL),
	}
	c.replaceItem(key, newItem)

	return newValue, nil
}

// SetAdd adds a member to the set stored at key
func (c *MemoryCache) SetAdd(ctx context.Context, key string, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) || item.members == nil {
		item = &cacheItem{
			members:    make(map[string]struct{}),
			expiration: time.Now().Add(c.config.TTL),
		}
		c.replaceItem(key, item)
	}
	item.members[member] = struct{}{}
	return nil
}

// SetIsMember checks if a member is part of the set at key
func (c *MemoryCache) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) || item.members == nil {
		return false, nil
	}
	_, ok := item.members[member]
	return ok, nil
}

// SetRemove removes a member from the set at key
func (c *MemoryCache) SetRemove(ctx context.Context, key string, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, exists := c.items[key]; exists && item.members != nil {
		delete(item.members, member)
	}
	return nil
}

// Close closes the cache connection
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}

	c.cleanupTicker.Stop()
	close(c.cleanupDone)
	c.items = make(map[string]*cacheItem)
	c.currentMemory = 0
	c.closed = true
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	active := int64(0)
	now := time.Now()
	for _, item := range c.items {
		if !now.After(item.expiration) {
			active++
		}
	}

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return CacheStats{
		Hits:        hits,
		Misses:      misses,
		HitRatio:    hitRatio,
		Keys:        active,
		MemoryUsage: c.currentMemory,
		Evictions:   atomic.LoadInt64(&c.evictions),
	}
}

// startCleanup runs a background goroutine to clean up expired items
func (c *MemoryCache) startCleanup() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.cleanupExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

// cleanupExpired removes expired items from the cache
func (c *MemoryCache) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			c.currentMemory -= c.itemMemory(key, item)
		}
	}
}

// evictIfNeeded removes items if the memory limit is exceeded.
// Expired items go first, then arbitrary items until under the limit.
func (c *MemoryCache) evictIfNeeded() {
	if c.maxMemory <= 0 || c.currentMemory <= c.maxMemory {
		return
	}

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			c.currentMemory -= c.itemMemory(key, item)
			atomic.AddInt64(&c.evictions, 1)
		}
	}

	for key, item := range c.items {
		if c.currentMemory <= c.maxMemory {
			break
		}
		delete(c.items, key)
		c.currentMemory -= c.itemMemory(key, item)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// replaceItem swaps the item at key and keeps the memory estimate current.
func (c *MemoryCache) replaceItem(key string, newItem *cacheItem) {
	if oldItem, exists := c.items[key]; exists {
		c.currentMemory -= c.itemMemory(key, oldItem)
	}
	c.items[key] = newItem
	c.currentMemory += c.itemMemory(key, newItem)
}

// itemMemory estimates memory usage for a cache item
func (c *MemoryCache) itemMemory(key string, item *cacheItem) int64 {
	if item == nil {
		return 0
	}
	size := int64(len(key) + len(item.value) + 64)
	for member := range item.members {
		size += int64(len(member) + 16)
	}
	return size
}

// matchPattern implements simple pattern matching with * wildcard
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")
	if len(parts[0]) > 0 && !strings.HasPrefix(text, parts[0]) {
		return false
	}
	if len(parts[len(parts)-1]) > 0 && !strings.HasSuffix(text, parts[len(parts)-1]) {
		return false
	}

	currentPos := len(parts[0])
	for i := 1; i < len(parts)-1; i++ {
		part := parts[i]
		if len(part) == 0 {
			continue
		}
		pos := strings.Index(text[currentPos:], part)
		if pos == -1 {
			return false
		}
		currentPos += pos + len(part)
	}

	return true
}
