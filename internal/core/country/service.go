// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/atlas/internal/platform/apperr"
	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/ctxutil"
	"github.com/taibuivan/atlas/internal/platform/validate"
)

// Fetcher retrieves the raw upstream body for a country name.
type Fetcher interface {
	Fetch(ctx context.Context, countryName string) ([]byte, error)
}

// Service resolves country names through the cache and the upstream API.
type Service struct {
	fetcher    Fetcher
	normalizer *Normalizer
	cache      Cache
	logger     *slog.Logger

	// inflight is nil unless de-duplication was requested.
	inflight *singleflight.Group
}

// ServiceOption customizes a [Service].
type ServiceOption func(*Service)

// WithInFlightDedupe makes concurrent misses for the same key share a single
// upstream call instead of racing each other.
func WithInFlightDedupe() ServiceOption {
	return func(service *Service) {
		service.inflight = &singleflight.Group{}
	}
}

// NewService wires a Service. The cache is owned by the caller, which is
// expected to construct it once at startup and close it on shutdown.
func NewService(fetcher Fetcher, normalizer *Normalizer, cache Cache, logger *slog.Logger, options ...ServiceOption) *Service {
	service := &Service{
		fetcher:    fetcher,
		normalizer: normalizer,
		cache:      cache,
		logger:     logger,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Lookup returns the normalized record for countryName.
func (service *Service) Lookup(ctx context.Context, countryName string) (*CountryInfo, error) {
	result, err := service.Resolve(ctx, countryName)
	if err != nil {
		return nil, err
	}
	return result.Info, nil
}

/*
Resolve runs the full lookup and reports whether the cache answered.

Flow:
 1. Trim and validate the name (BAD_REQUEST when empty).
 2. Exact-key cache hit returns immediately.
 3. Miss: one upstream call, normalize, store under the trimmed name.

There are no retries; the first failure is returned as an [*apperr.AppError].
*/
func (service *Service) Resolve(ctx context.Context, countryName string) (Result, error) {
	key := strings.TrimSpace(countryName)

	validator := &validate.Validator{Message: "Please enter a country name."}
	if err := validator.
		Required("countryName", key).
		MaxLen("countryName", key, constants.MaxCountryNameLength).
		NoControl("countryName", key).
		Err(); err != nil {
		return Result{}, err
	}

	logger := ctxutil.GetLogger(ctx, service.logger).With(slog.String("country", key))

	if info, ok := service.cached(ctx, logger, key); ok {
		logger.DebugContext(ctx, "country_cache_hit")
		return Result{Info: info, Cached: true}, nil
	}
	logger.DebugContext(ctx, "country_cache_miss")

	if service.inflight == nil {
		info, err := service.fetchAndStore(ctx, logger, key)
		return Result{Info: info}, err
	}

	// The shared call must not die with whichever request happened to start it;
	// the client timeout still bounds it.
	flightCtx := context.WithoutCancel(ctx)
	value, err, shared := service.inflight.Do(key, func() (any, error) {
		if info, ok := service.cached(flightCtx, logger, key); ok {
			return Result{Info: info, Cached: true}, nil
		}
		info, err := service.fetchAndStore(flightCtx, logger, key)
		return Result{Info: info}, err
	})
	if err != nil {
		return Result{}, err
	}
	if shared {
		logger.DebugContext(ctx, "country_lookup_shared")
	}

	// Callers sharing a flight must not alias one record.
	result := value.(Result)
	info := *result.Info
	return Result{Info: &info, Cached: result.Cached}, nil
}

// CacheSize reports how many lookups are cached.
func (service *Service) CacheSize(ctx context.Context) (int, error) {
	return service.cache.Len(ctx)
}

// cached reads key from the cache. Backend failures degrade to a miss.
func (service *Service) cached(ctx context.Context, logger *slog.Logger, key string) (*CountryInfo, bool) {
	info, ok, err := service.cache.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "country_cache_read_failed", slog.Any("error", err))
		return nil, false
	}
	return info, ok
}

func (service *Service) fetchAndStore(ctx context.Context, logger *slog.Logger, key string) (*CountryInfo, error) {
	body, err := service.fetcher.Fetch(ctx, key)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Internal(fmt.Errorf("country: fetch %q: %w", key, err))
	}

	info, err := service.normalizer.NormalizePayload(body)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if info == nil {
		return nil, apperr.NotFound(msgUnusableRecord)
	}

	if err := service.cache.Set(ctx, key, info); err != nil {
		logger.WarnContext(ctx, "country_cache_write_failed", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "country_resolved", slog.String("name", info.Name))
	return info, nil
}
