package cache

import (
	"context"
	"sync"
	"time"

	"github.com/proteinscan/backend/internal/domain"
)

// cacheItem represents a single cached product record with expiration
type cacheItem struct {
	record     domain.ProductRecord
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory product cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]cacheItem),
		done: make(chan struct{}),
	}

	go c.cleanupExpired(10 * time.Minute)

	return c
}

// Get retrieves a product record from the cache. Records are returned by
// copy; callers cannot mutate cached state.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.ProductRecord, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	record := item.record
	return &record, nil
}

// Set stores a product record in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, record *domain.ProductRecord, ttl time.Duration) error {
	if record == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		record:     *record,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a product record from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	if time.Now().After(item.expiration) {
		return false, nil
	}

	return true, nil
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *MemoryCache) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mutex.Lock()
			now := time.Now()
			for key, item := range c.data {
				if now.After(item.expiration) {
					delete(c.data, key)
				}
			}
			c.mutex.Unlock()
		}
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
