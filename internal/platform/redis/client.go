// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis dials the optional out-of-process lookup cache.

It is only used when CACHE_BACKEND=redis. The default deployment keeps the
cache in process memory and never touches this package.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout    = 3 * time.Second
	defaultTimeout = 2 * time.Second
	defaultPool    = 10
)

// Options configures the cache connection.
type Options struct {
	// URL is a redis:// or rediss:// connection string.
	URL string
	// PoolSize caps open connections. Lookups are single GET/SET round trips.
	PoolSize int
	// Timeout bounds each command and each readiness ping.
	Timeout time.Duration
}

func (opts Options) toClientOptions() (*redis.Options, error) {
	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pool := opts.PoolSize
	if pool <= 0 {
		pool = defaultPool
	}

	parsed.PoolSize = pool
	parsed.MinIdleConns = min(2, pool)
	parsed.DialTimeout = dialTimeout
	parsed.ReadTimeout = timeout
	parsed.WriteTimeout = timeout
	return parsed, nil
}

// NewClient dials Redis and pings it once, so a bad URL or an unreachable
// server fails startup instead of the first lookup.
func NewClient(ctx context.Context, opts Options, logger *slog.Logger) (*redis.Client, error) {
	clientOptions, err := opts.toClientOptions()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(clientOptions)
	if err := ping(ctx, client, clientOptions.ReadTimeout); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", clientOptions.Addr),
		slog.Int("db", clientOptions.DB),
		slog.Int("pool_size", clientOptions.PoolSize),
	)
	return client, nil
}

// Checker returns a readiness probe for client.
func Checker(client *redis.Client) func(ctx context.Context) error {
	timeout := client.Options().ReadTimeout
	return func(ctx context.Context) error {
		return ping(ctx, client, timeout)
	}
}

func ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping %s: %w", client.Options().Addr, err)
	}
	return nil
}
