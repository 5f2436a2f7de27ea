// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Atlas country lookup server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the lookup cache (in-memory, or Redis when configured).
//  4. Wire the upstream client, normalizer and lookup service.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/atlas/internal/api"
	"github.com/taibuivan/atlas/internal/core/country"
	"github.com/taibuivan/atlas/internal/platform/config"
	"github.com/taibuivan/atlas/internal/platform/constants"
	redisstore "github.com/taibuivan/atlas/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Atlas] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("upstream", cfg.UpstreamBaseURL),
		slog.Duration("upstream_timeout", cfg.UpstreamTimeout),
		slog.String("cache_backend", cfg.CacheBackend),
		slog.String("label_locale", cfg.Locale().String()),
		slog.Bool("dedupe_inflight", cfg.DedupeInFlight),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Cache ──────────────────────────────────────────────────────────
	var (
		cache      country.Cache = country.NewMemoryCache()
		checkCache func(ctx context.Context) error
		rdb        *goredis.Client
	)

	if cfg.CacheBackend == constants.CacheBackendRedis {
		rdb, err = redisstore.NewClient(startupCtx, redisstore.Options{
			URL:      cfg.RedisURL,
			PoolSize: cfg.RedisPoolSize,
			Timeout:  cfg.RedisTimeout,
		}, log)
		must(log, err, "connect to redis")

		redisCache := country.NewRedisCache(rdb)
		log.Info("redis_cache_namespace", slog.String("namespace", redisCache.Namespace()))

		cache = redisCache
		checkCache = redisstore.Checker(rdb)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	var options []country.ServiceOption
	if cfg.DedupeInFlight {
		options = append(options, country.WithInFlightDedupe())
	}

	client := country.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	normalizer := country.NewNormalizer(cfg.Locale())
	service := country.NewService(client, normalizer, cache, log, options...)
	countryHandler := country.NewHandler(service, cfg.Locale())

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: checkCache,
		CacheSize:  service.CacheSize,
	}, log)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Country:   countryHandler,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	exitCode := 0
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		exitCode = 1
	}

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		exitCode = 1
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer closeCancel()

	if err := cache.Close(closeCtx); err != nil {
		log.Error("cache close error", slog.Any("error", err))
	}
	if rdb != nil {
		log.Info("closing redis client")
		if err := rdb.Close(); err != nil {
			log.Error("redis close error", slog.Any("error", err))
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger at level.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "atlas"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
