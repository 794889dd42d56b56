package forecast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skycast/models"
)

// CachedSource wraps a Source and adds TTL caching keyed by coordinates.
// A cached payload is always a previously successful fetch, so serving it
// never weakens the all-or-nothing fetch contract upstream callers rely on.
type CachedSource struct {
	source         Source
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached payload with its timestamp.
type cacheEntry struct {
	Payload   models.ForecastPayload
	Timestamp time.Time
}

// NewCachedSource creates a new cached wrapper around a forecast source.
func NewCachedSource(source Source, cacheDuration time.Duration) *CachedSource {
	return &CachedSource{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying source with [Cached] suffix.
func (c *CachedSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// cacheKey rounds coordinates to two decimals (~1km) so nearby lookups for
// the same place share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// Fetch fetches forecast data, using the cache when available.
func (c *CachedSource) Fetch(ctx context.Context, lat, lon float64) (models.ForecastPayload, error) {
	key := cacheKey(lat, lon)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	// If found and not expired, return the cached payload.
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		return entry.Payload, nil
	}

	// Cache miss or expired, fetch fresh data.
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	payload, err := c.source.Fetch(ctx, lat, lon)
	if err != nil {
		return models.ForecastPayload{}, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{
		Payload:   payload,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return payload, nil
}

// CacheStats returns statistics about cache hits and misses.
func (c *CachedSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

var _ Source = (*CachedSource)(nil)
