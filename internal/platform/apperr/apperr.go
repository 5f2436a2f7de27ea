// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Atlas.

It provides a rich error type that bridges the gap between low-level transport
errors (upstream HTTP, cache backends) and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Taxonomy: BAD_REQUEST, NOT_FOUND, UPSTREAM_ERROR, CONNECTION_ERROR, INTERNAL_ERROR.
  - Mapping: Every constructor fixes the HTTP status code that will be sent.

Every error that leaves the service layer should be an [AppError] so that the
API answers with a consistent JSON body.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeConnection = "CONNECTION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Atlas API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking upstream payloads or transport details.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for BAD_REQUEST responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] with optional per-field details.
func BadRequest(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NotFound creates a 404 [AppError].
//
// Example:
//
//	apperr.NotFound("Country not found. Please check the country name.")
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// # Upstream Errors

// Upstream creates an [AppError] for a non-404 error status returned by an
// upstream API. The upstream status is passed through unchanged.
func Upstream(status int, cause error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    fmt.Sprintf("The country data service answered with status %d", status),
		HTTPStatus: status,
		Cause:      cause,
	}
}

// Connection creates a 503 [AppError] for network, DNS or timeout failures
// while reaching an upstream dependency.
func Connection(cause error) *AppError {
	return &AppError{
		Code:       CodeConnection,
		Message:    "Could not reach the country data service",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
