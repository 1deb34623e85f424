package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"energy-dashboard/internal/model"
)

// cacheEntry is one cached statistics response.
type cacheEntry struct {
	Series    map[string][]model.StatSample
	ExpiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for host statistics responses.
// It is opt-in (ENABLE_STATS_CACHE=true) and meant for local development:
// the active window defines validity of entity values, so a shared cache in
// production would serve misleading data near window boundaries.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

var (
	globalCache *ResponseCache
	cacheOnce   sync.Once
)

// GetCache returns the global cache, or nil when caching is disabled.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_STATS_CACHE") != "true" {
		return nil
	}
	cacheOnce.Do(func() {
		ttl := 5 * time.Minute
		if ttlStr := os.Getenv("STATS_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ResponseCache{
			store: make(map[string]cacheEntry),
			ttl:   ttl,
		}
		go globalCache.cleanup()
	})
	return globalCache
}

func (c *ResponseCache) Get(key string) (map[string][]model.StatSample, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Series, true
}

func (c *ResponseCache) Set(key string, series map[string][]model.StatSample) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{Series: series, ExpiresAt: time.Now().Add(c.ttl)}
}

func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheKey derives a deterministic key from the entity set and window.
func CacheKey(entityIDs []string, window model.TimeWindow) string {
	keyStr := fmt.Sprintf("%s:%d:%d",
		strings.Join(entityIDs, ","),
		window.Start.Unix(),
		window.End.Unix(),
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
