// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/atlas/internal/platform/apperr"
	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/ctxutil"
)

// Client messages shown to API callers.
const (
	msgNotFound         = "Country not found. Please check the country name."
	msgEmbeddedNotFound = "Country not found. Please enter the full, correct country name."
	msgUnusableRecord   = "Country not found or the data format was unexpected."
)

// Client performs name searches against the REST Countries API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a Client for baseURL whose calls never outlive timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch issues GET {baseURL}/{countryName} and returns the raw JSON body.
//
// Failures are returned as [*apperr.AppError]:
//   - 404, or a 2xx body embedding "status": 404: NOT_FOUND
//   - any other error status: UPSTREAM_ERROR with that status
//   - network, DNS and timeout failures: CONNECTION_ERROR
func (client *Client) Fetch(ctx context.Context, countryName string) ([]byte, error) {
	logger := ctxutil.GetLogger(ctx, client.logger)
	endpoint := client.baseURL + "/" + url.PathEscape(countryName)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("country: build request: %w", err))
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "upstream_unreachable",
			slog.String("country", countryName),
			slog.Any("error", err),
		)
		return nil, apperr.Connection(fmt.Errorf("country: upstream request: %w", err))
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, constants.MaxUpstreamBodyBytes))
	if err != nil {
		return nil, apperr.Connection(fmt.Errorf("country: read upstream body: %w", err))
	}

	logger.DebugContext(ctx, "upstream_responded",
		slog.String("country", countryName),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound(msgNotFound)

	case response.StatusCode >= http.StatusBadRequest:
		return nil, apperr.Upstream(response.StatusCode,
			fmt.Errorf("country: upstream status %d: %s", response.StatusCode, snippet(body)))

	case response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices:
		return nil, apperr.Upstream(http.StatusBadGateway,
			fmt.Errorf("country: unexpected upstream status %d", response.StatusCode))
	}

	if status, ok := embeddedStatus(body); ok && status == http.StatusNotFound {
		return nil, apperr.NotFound(msgEmbeddedNotFound)
	}

	return body, nil
}

// snippet shortens an upstream body for logging.
func snippet(body []byte) string {
	const max = 256
	text := strings.TrimSpace(string(body))
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}
