// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/pkg/uuidv7"
)

// purgeBatch is the SCAN page size used when purging a namespace.
const purgeBatch = 500

// RedisCache keeps lookups in Redis under a namespace owned by one process.
//
// Keys have no TTL. The namespace embeds a per-instance ID and is deleted on
// Close, so the cache never outlives the process that filled it.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache returns a RedisCache with a fresh instance namespace.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:    client,
		namespace: constants.RedisPrefixCountry + uuidv7.New() + ":",
	}
}

// Namespace returns the key prefix of this instance.
func (cache *RedisCache) Namespace() string {
	return cache.namespace
}

/*
Get retrieves the cached lookup for key.

Returns:
  - *CountryInfo: decoded entry, nil on miss
  - bool: whether the key was present
  - error: connectivity or decoding failures
*/
func (cache *RedisCache) Get(ctx context.Context, key string) (*CountryInfo, bool, error) {
	payload, err := cache.client.Get(ctx, cache.namespace+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_country_get_failed: %w", err)
	}

	info := &CountryInfo{}
	if err := json.Unmarshal(payload, info); err != nil {
		return nil, false, fmt.Errorf("redis_country_decode_failed: %w", err)
	}
	return info, true, nil
}

// Set stores info under key without expiry.
func (cache *RedisCache) Set(ctx context.Context, key string, info *CountryInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("redis_country_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, cache.namespace+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis_country_set_failed: %w", err)
	}
	return nil
}

// Len counts the keys of this instance's namespace.
func (cache *RedisCache) Len(ctx context.Context) (int, error) {
	count := 0
	iter := cache.client.Scan(ctx, 0, cache.namespace+"*", purgeBatch).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis_country_scan_failed: %w", err)
	}
	return count, nil
}

// Close deletes every key of this instance's namespace. The client itself is
// owned by the caller and stays open.
func (cache *RedisCache) Close(ctx context.Context) error {
	batch := make([]string, 0, purgeBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := cache.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis_country_purge_failed: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	iter := cache.client.Scan(ctx, 0, cache.namespace+"*", purgeBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == purgeBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis_country_scan_failed: %w", err)
	}
	return flush()
}
