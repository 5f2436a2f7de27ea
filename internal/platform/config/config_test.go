// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/taibuivan/atlas/internal/platform/config"
	"github.com/taibuivan/atlas/internal/platform/constants"
)

/*
TestLoad_Defaults verifies the defaults applied when no variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, constants.DefaultUpstreamBaseURL, cfg.UpstreamBaseURL)
	assert.Equal(t, constants.DefaultUpstreamTimeout, cfg.UpstreamTimeout)
	assert.Equal(t, constants.CacheBackendMemory, cfg.CacheBackend)
	assert.False(t, cfg.DedupeInFlight)
	assert.Equal(t, language.English, cfg.Locale())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_FromEnvironment verifies that variables override defaults.
*/
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "5000")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("LABEL_LOCALE", "tr")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_POOL_SIZE", "4")
	t.Setenv("LOOKUP_DEDUPE_INFLIGHT", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, language.Turkish, cfg.Locale())
	assert.True(t, cfg.DedupeInFlight)
	assert.Equal(t, 4, cfg.RedisPoolSize)
	assert.Equal(t, 2*time.Second, cfg.RedisTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

/*
TestValidate_Rejects covers the cross-field rules.
*/
func TestValidate_Rejects(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			UpstreamBaseURL: constants.DefaultUpstreamBaseURL,
			UpstreamTimeout: time.Second,
			LabelLocale:     "en",
			CacheBackend:    constants.CacheBackendMemory,
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown_backend", func(c *config.Config) { c.CacheBackend = "memcached" }},
		{"redis_without_url", func(c *config.Config) { c.CacheBackend = constants.CacheBackendRedis }},
		{"redis_zero_pool", func(c *config.Config) {
			c.CacheBackend, c.RedisURL, c.RedisPoolSize, c.RedisTimeout = constants.CacheBackendRedis, "redis://localhost:6379", 0, time.Second
		}},
		{"redis_zero_timeout", func(c *config.Config) {
			c.CacheBackend, c.RedisURL, c.RedisPoolSize, c.RedisTimeout = constants.CacheBackendRedis, "redis://localhost:6379", 5, 0
		}},
		{"zero_timeout", func(c *config.Config) { c.UpstreamTimeout = 0 }},
		{"timeout_at_request_deadline", func(c *config.Config) { c.UpstreamTimeout = constants.GlobalRequestTimeout }},
		{"timeout_past_request_deadline", func(c *config.Config) { c.UpstreamTimeout = time.Minute }},
		{"relative_base_url", func(c *config.Config) { c.UpstreamBaseURL = "/v3.1/name" }},
		{"bad_locale", func(c *config.Config) { c.LabelLocale = "not a tag!" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	justUnder := valid()
	justUnder.UpstreamTimeout = constants.GlobalRequestTimeout - time.Second
	require.NoError(t, justUnder.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

/*
TestOriginAllowed checks CORS origin rules per environment.
*/
func TestOriginAllowed(t *testing.T) {
	dev := config.Config{Environment: "development"}
	assert.True(t, dev.OriginAllowed("https://anything.example"))

	prod := config.Config{Environment: "production", AllowedOrigins: []string{"https://atlas.example"}}
	assert.True(t, prod.OriginAllowed("https://atlas.example"))
	assert.False(t, prod.OriginAllowed("https://evil.example"))
}
