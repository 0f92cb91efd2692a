// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"sync"
	"time"
)

type cacheKey struct {
	Provider string
	Query    string
	Count    int
}

type cacheEntry struct {
	Places []Place
	Expiry time.Time
}

// CachedGeocoder wraps a Geocoder and caches its results. Empty results are cached with a
// separate TTL.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, query string, count int) ([]Place, error) {
	normalized, _ := NormalizeQuery(query)
	key := cacheKey{Provider: c.coder.Name(), Query: normalized, Count: count}

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && time.Now().Before(entry.Expiry) {
		places := append([]Place(nil), entry.Places...)
		c.mu.RUnlock()
		return places, nil
	}
	c.mu.RUnlock()

	places, err := c.coder.Search(ctx, query, count)
	if err != nil {
		return places, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.ttlHit
	if len(places) == 0 {
		ttl = c.ttlMiss
	}
	c.cache[key] = cacheEntry{
		Places: append([]Place(nil), places...),
		Expiry: time.Now().Add(ttl),
	}

	return places, nil
}

// Purge removes all expired entries from the cache and returns the number of removed entries.
func (c *CachedGeocoder) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.cache {
		if !now.Before(entry.Expiry) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, including expired ones not yet purged.
func (c *CachedGeocoder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
