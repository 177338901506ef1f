package catalogstore

import (
	"sync"
	"time"
)

// snapshotItem is one cached catalog snapshot with expiration.
type snapshotItem struct {
	value      interface{}
	expiration time.Time
}

// snapshotCache is a thread-safe in-memory cache in front of the catalog files.
// Snapshots are immutable once stored; readers receive copies, never the cached
// maps themselves.
type snapshotCache struct {
	data  map[string]snapshotItem
	ttl   time.Duration
	mutex sync.RWMutex
}

// newSnapshotCache creates a snapshot cache with a fixed TTL.
func newSnapshotCache(ttl time.Duration) *snapshotCache {
	cache := &snapshotCache{
		data: make(map[string]snapshotItem),
		ttl:  ttl,
	}

	// Cleanup goroutine removes expired snapshots every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// get retrieves a snapshot, reporting whether a live one was found.
func (c *snapshotCache) get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiration) {
		return nil, false
	}
	return item.value, true
}

// set stores a snapshot under the cache TTL.
func (c *snapshotCache) set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = snapshotItem{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

// invalidateShop drops every snapshot belonging to one shop. Called after a
// scraping run replaces the shop's files on disk.
func (c *snapshotCache) invalidateShop(shop string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	prefix := shop + "/"
	for key := range c.data {
		if key == shop || len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.data, key)
		}
	}
}

// cleanupExpired removes expired snapshots periodically.
func (c *snapshotCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
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

// size returns the current number of cached snapshots.
func (c *snapshotCache) size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
