// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckCache pings the cache backend. Nil when the cache is in-process.
	CheckCache func(ctx context.Context) error

	// CacheSize reports the number of cached lookups.
	CacheSize func(ctx context.Context) (int, error)
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name    string `json:"name"`
		IsOK    bool   `json:"ok"`
		Entries *int   `json:"entries,omitempty"`
		Error   string `json:"error,omitempty"`
	}

	ctx := request.Context()
	result := checkResult{Name: "cache", IsOK: true}

	if handler.dependencies.CheckCache != nil {
		if err := handler.dependencies.CheckCache(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			handler.logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", "cache"), slog.Any("error", err))
		}
	}

	if result.IsOK && handler.dependencies.CacheSize != nil {
		if entries, err := handler.dependencies.CacheSize(ctx); err == nil {
			result.Entries = &entries
		}
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !result.IsOK {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: []checkResult{result},
	})
}
