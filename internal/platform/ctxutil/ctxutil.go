// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores the request ID and the request-scoped logger in a
// [context.Context].
//
// Keys are unexported, so values can only be set and read through this package.
package ctxutil

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
)

// # Request Tracing

// WithRequestID returns a copy of ctx carrying the correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger. Outside a request it returns
// fallback when given, else [slog.Default].
//
// Background work such as a shared upstream call passes the component logger
// as fallback so its lines keep the component attributes.
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	for _, logger := range fallback {
		if logger != nil {
			return logger
		}
	}
	return slog.Default()
}
