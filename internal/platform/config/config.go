// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (cache, upstream client) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/taibuivan/atlas/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Atlas API server.
type Config struct {

	// Server settings
	ServerHost  string `env:"SERVER_HOST"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream country data API
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"https://restcountries.com/v3.1/name"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT"  envDefault:"10s"`

	// LabelLocale is the BCP 47 tag used for field labels and number formatting.
	LabelLocale string `env:"LABEL_LOCALE" envDefault:"en"`

	// Lookup cache
	CacheBackend  string        `env:"CACHE_BACKEND"   envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL"`
	RedisPoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisTimeout  time.Duration `env:"REDIS_TIMEOUT"   envDefault:"2s"`

	// DedupeInFlight collapses concurrent misses for the same country into one upstream call.
	DedupeInFlight bool `env:"LOOKUP_DEDUPE_INFLIGHT" envDefault:"false"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.CacheBackend {
	case constants.CacheBackendMemory:
	case constants.CacheBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when CACHE_BACKEND=redis"))
		}
		if c.RedisPoolSize <= 0 {
			errs = append(errs, fmt.Errorf("REDIS_POOL_SIZE must be positive, got %d", c.RedisPoolSize))
		}
		if c.RedisTimeout <= 0 {
			errs = append(errs, fmt.Errorf("REDIS_TIMEOUT must be positive, got %s", c.RedisTimeout))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend))
	}

	switch {
	case c.UpstreamTimeout <= 0:
		errs = append(errs, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout))
	case c.UpstreamTimeout >= constants.GlobalRequestTimeout:
		// The request deadline must fire after the upstream call gives up.
		errs = append(errs, fmt.Errorf("UPSTREAM_TIMEOUT must be below the %s request deadline, got %s",
			constants.GlobalRequestTimeout, c.UpstreamTimeout))
	}

	if u, err := url.Parse(c.UpstreamBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("UPSTREAM_BASE_URL %q is not an absolute URL", c.UpstreamBaseURL))
	}

	if _, err := language.Parse(c.LabelLocale); err != nil {
		errs = append(errs, fmt.Errorf("LABEL_LOCALE %q: %w", c.LabelLocale, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// Locale returns the parsed label locale. Validate guarantees it parses.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.LabelLocale)
	if err != nil {
		return language.English
	}
	return tag
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginAllowed reports whether a CORS origin may call the API.
func (c *Config) OriginAllowed(origin string) bool {
	if c.IsDevelopment() {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
