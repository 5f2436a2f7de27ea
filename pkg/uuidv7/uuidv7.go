// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers.
//
// Atlas uses them for request correlation IDs and for the per-process Redis
// cache namespace. Sorting log lines or keys by ID also sorts them by time.
package uuidv7

import "github.com/google/uuid"

// New generates a UUIDv7 string.
//
// If the v7 generator fails it falls back to a random v4 value, so callers
// always get a usable unique ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
