// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Lookup: Upstream defaults and input limits.
  - Headers & JSON fields shared by middleware and handlers.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "atlas-api"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout must stay above the upstream timeout so slow lookups can still answer.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 15 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds dependency checks (Redis ping) during boot.
	StartupTimeout = 30 * time.Second
)

// # Lookup

const (
	// DefaultUpstreamBaseURL is the REST Countries name-search endpoint.
	DefaultUpstreamBaseURL = "https://restcountries.com/v3.1/name"

	// DefaultUpstreamTimeout bounds a single upstream call.
	DefaultUpstreamTimeout = 10 * time.Second

	// MaxCountryNameLength is the longest accepted query, in runes.
	MaxCountryNameLength = 100

	// MaxUpstreamBodyBytes caps how much of an upstream body is read.
	MaxUpstreamBodyBytes = 4 << 20
)

// # Cache Backends

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	// RedisPrefixCountry namespaces cached lookups; the instance ID follows it.
	RedisPrefixCountry = "atlas:country:"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderXCache         = "X-Cache"
	HeaderAcceptLanguage = "Accept-Language"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldApp     = "app"
	FieldVersion = "version"
)
