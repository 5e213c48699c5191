package cache

import (
	"sync"
	"time"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// MinutesCache is an in-memory cache of generated minutes keyed by meeting
// ID, with expiration. It absorbs repeated reads of freshly generated minutes
// before they are queried from the database.
type MinutesCache struct {
	mu    sync.RWMutex
	items map[string]*cacheItem
}

type cacheItem struct {
	minutes    *entities.Minutes
	expireTime time.Time
}

// NewMinutesCache creates a new in-memory minutes cache
func NewMinutesCache() *MinutesCache {
	cache := &MinutesCache{
		items: make(map[string]*cacheItem),
	}

	// Start cleanup goroutine to remove expired items
	go cache.cleanupExpired()

	return cache
}

// Set stores minutes under the meeting ID with expiration
func (mc *MinutesCache) Set(meetingID string, minutes *entities.Minutes, expiration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.items[meetingID] = &cacheItem{
		minutes:    minutes,
		expireTime: time.Now().Add(expiration),
	}
}

// Get retrieves minutes by meeting ID (returns false if not found or expired)
func (mc *MinutesCache) Get(meetingID string) (*entities.Minutes, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	item, exists := mc.items[meetingID]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expireTime) {
		return nil, false
	}

	return item.minutes, true
}

// Delete removes the cached minutes for a meeting
func (mc *MinutesCache) Delete(meetingID string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.items, meetingID)
}

// cleanupExpired periodically removes expired items
func (mc *MinutesCache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		mc.mu.Lock()
		now := time.Now()
		for key, item := range mc.items {
			if now.After(item.expireTime) {
				delete(mc.items, key)
			}
		}
		mc.mu.Unlock()
	}
}
