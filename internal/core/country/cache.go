// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"sync"
)

// Cache stores resolved lookups by their trimmed query.
//
// Entries never expire. Implementations must be safe for concurrent use, and
// concurrent writes to one key are last-write-wins.
type Cache interface {
	Get(ctx context.Context, key string) (*CountryInfo, bool, error)
	Set(ctx context.Context, key string, info *CountryInfo) error
	Len(ctx context.Context) (int, error)
	Close(ctx context.Context) error
}

// MemoryCache is the default process-local [Cache].
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CountryInfo
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CountryInfo)}
}

// Get returns a copy of the entry for key.
func (cache *MemoryCache) Get(_ context.Context, key string) (*CountryInfo, bool, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	info, ok := cache.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &info, true, nil
}

// Set stores a copy of info under key.
func (cache *MemoryCache) Set(_ context.Context, key string, info *CountryInfo) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[key] = *info
	return nil
}

// Len returns the number of cached entries.
func (cache *MemoryCache) Len(context.Context) (int, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries), nil
}

// Close drops every entry.
func (cache *MemoryCache) Close(context.Context) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	clear(cache.entries)
	return nil
}
