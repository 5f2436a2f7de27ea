// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP processing chain wrapped around every
Atlas route.

Order matters. The chain in internal/api is:

  - RequestID: assigns the correlation ID first so every later log line has it.
  - AccessLog: installs the request-scoped logger and writes one line per request.
  - PanicRecovery: turns handler panics into a JSON 500.
  - CORS: answers pre-flight requests for the browser search page.
*/
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/atlas/internal/platform/apperr"
	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/ctxutil"
	"github.com/taibuivan/atlas/pkg/uuidv7"
)

// maxRequestIDLength caps client-supplied correlation IDs before they reach the logs.
const maxRequestIDLength = 128

// # Request Tracing

// RequestID attaches a correlation ID to every request.
//
// A client-supplied X-Request-ID is kept when it is short and printable;
// otherwise a fresh UUIDv7 is issued. The ID is echoed in the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !usableRequestID(requestID) {
				requestID = uuidv7.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func usableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}

// # Access Logging

// AccessLog derives a request-scoped logger, stores it in the context and logs
// the outcome once the handler returns.
//
// The level follows the status class (5xx error, 4xx warn). The X-Cache header
// set by the country handler is logged as cache=HIT|MISS.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)

			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)
			next.ServeHTTP(wrapped, request.WithContext(ctx))

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.Int("status", status),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			}
			if cache := wrapped.Header().Get(constants.HeaderXCache); cache != "" {
				attrs = append(attrs, slog.String("cache", cache))
			}

			requestLogger.LogAttrs(ctx, levelFor(status), "http_request_finished", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// # Reliability

// PanicRecovery converts a handler panic into a logged INTERNAL_ERROR response.
// [http.ErrAbortHandler] is re-raised so net/http can abort the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctxutil.GetLogger(request.Context(), logger).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				writeError(writer, http.StatusInternalServerError, apperr.Internal(nil))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy decides which origins may call the API.
type OriginPolicy interface {
	OriginAllowed(origin string) bool
}

// CORS allows listed origins to issue GET lookups and read the tracing headers.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)
			if policy.OriginAllowed(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Accept-Language, "+constants.HeaderXRequestID)
				header.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID+", "+constants.HeaderXCache)
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Helpers

// RealIP returns the client address, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the socket peer.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError renders err in the respond.Error body shape.
func writeError(writer http.ResponseWriter, status int, err *apperr.AppError) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(err)
}
