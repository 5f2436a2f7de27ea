// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Successful responses carry the resource itself as the JSON body. Errors
// always use [ErrorEnvelope], so clients can rely on an "error" string field
// whatever went wrong.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/atlas/internal/platform/apperr"
	"github.com/taibuivan/atlas/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with payload as the body.
func OK(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// Error writes err as an [ErrorEnvelope].
//
// Errors that are not an [*apperr.AppError] become INTERNAL_ERROR. Every 5xx is
// logged with its cause; the cause itself never reaches the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()

	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.Int("status", appError.HTTPStatus),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
