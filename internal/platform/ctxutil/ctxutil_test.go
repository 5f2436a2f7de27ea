// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/atlas/internal/platform/ctxutil"
)

/*
TestRequestID round-trips the correlation ID and keeps it on detached contexts,
which the shared upstream call relies on.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Equal(t, "req-42", ctxutil.GetRequestID(context.WithoutCancel(ctx)))
}

/*
TestGetLogger checks the lookup order: stored logger, first non-nil fallback,
then the global default.
*/
func TestGetLogger(t *testing.T) {
	stored := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	empty := context.Background()

	tests := []struct {
		name      string
		ctx       context.Context
		fallbacks []*slog.Logger
		want      *slog.Logger
	}{
		{"default", empty, nil, slog.Default()},
		{"fallback", empty, []*slog.Logger{fallback}, fallback},
		{"nil_fallback_skipped", empty, []*slog.Logger{nil, fallback}, fallback},
		{"stored_wins", ctxutil.WithLogger(empty, stored), []*slog.Logger{fallback}, stored},
		{"stored_nil_ignored", ctxutil.WithLogger(empty, nil), []*slog.Logger{fallback}, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, ctxutil.GetLogger(tt.ctx, tt.fallbacks...))
		})
	}
}
