// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/taibuivan/atlas/internal/api"
	"github.com/taibuivan/atlas/internal/core/country"
	"github.com/taibuivan/atlas/internal/platform/config"
	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/respond"
)

const japanPayload = `[{
	"name": {"common": "Japan"},
	"capital": ["Tokyo"],
	"population": 125000000,
	"region": "Asia",
	"continents": ["Asia"],
	"currencies": {"JPY": {"name": "Japanese yen", "symbol": "¥"}},
	"languages": {"jpn": "Japanese"}
}]`

// fakeUpstream imitates the REST Countries name endpoint.
type fakeUpstream struct {
	server   *httptest.Server
	calls    atomic.Int32
	lastPath atomic.Value
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	upstream := &fakeUpstream{}
	upstream.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		upstream.calls.Add(1)
		upstream.lastPath.Store(request.URL.EscapedPath())
		name := strings.TrimPrefix(request.URL.Path, "/v3.1/name/")

		switch name {
		case "Japan":
			_, _ = io.WriteString(writer, japanPayload)
		case "Wakanda":
			writer.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(writer, `{"status": 404, "message": "Not Found"}`)
		case "Genovia":
			_, _ = io.WriteString(writer, `{"status": 404, "message": "Not Found"}`)
		case "Teapot":
			writer.WriteHeader(http.StatusTeapot)
		case "Broken":
			_, _ = io.WriteString(writer, `<html>maintenance</html>`)
		case "Panic":
			panic(http.ErrAbortHandler)
		default:
			writer.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(upstream.server.Close)
	return upstream
}

type harness struct {
	router   http.Handler
	upstream *fakeUpstream
}

func newHarness(t *testing.T, deps api.HealthDependencies) *harness {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	upstream := newFakeUpstream(t)

	cfg := &config.Config{Environment: "test", AllowedOrigins: []string{"https://atlas.example"}}

	client := country.NewClient(upstream.server.URL+"/v3.1/name", time.Second, logger)
	service := country.NewService(client, country.NewNormalizer(language.English), country.NewMemoryCache(), logger)
	if deps.CacheSize == nil {
		deps.CacheSize = service.CacheSize
	}
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	router := api.NewRouter(cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Country:   country.NewHandler(service, language.Turkish),
	})
	return &harness{router: router, upstream: upstream}
}

func (h *harness) get(t *testing.T, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCountry_Success serves the record and caches it.
*/
func TestCountry_Success(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	first := h.get(t, "/api/country/Japan")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(constants.HeaderXCache))
	assert.NotEmpty(t, first.Header().Get(constants.HeaderXRequestID))

	var info country.CountryInfo
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &info))
	assert.Equal(t, "Japan", info.Name)
	assert.Equal(t, "red", info.ThemeColor)
	assert.Equal(t, "Japanese yen (JPY)", info.CurrencyDisplay)

	second := h.get(t, "/api/country/%20Japan%20")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(constants.HeaderXCache))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, int32(1), h.upstream.calls.Load())
}

/*
TestCountry_Errors maps every failure to its status and JSON body.
*/
func TestCountry_Errors(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"blank_name", "/api/country/%20%20%20", http.StatusBadRequest, "BAD_REQUEST"},
		{"missing_name", "/api/country/", http.StatusBadRequest, "BAD_REQUEST"},
		{"upstream_404", "/api/country/Wakanda", http.StatusNotFound, "NOT_FOUND"},
		{"embedded_404", "/api/country/Genovia", http.StatusNotFound, "NOT_FOUND"},
		{"passthrough_status", "/api/country/Teapot", http.StatusTeapot, "UPSTREAM_ERROR"},
		{"upstream_500", "/api/country/Elsewhere", http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{"unparseable", "/api/country/Broken", http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"dropped_connection", "/api/country/Panic", http.StatusServiceUnavailable, "CONNECTION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := h.get(t, tt.target)
			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

/*
TestCountry_NameEscaping forwards the decoded name exactly once, whether or not
the request path needed a raw form.
*/
func TestCountry_NameEscaping(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPath string
	}{
		{"literal_percent", "/api/country/a%2520b", "/v3.1/name/a%2520b"},
		{"space", "/api/country/United%20Kingdom", "/v3.1/name/United%20Kingdom"},
		{"encoded_slash", "/api/country/S%C3%A3o%2FTom%C3%A9", "/v3.1/name/S%C3%A3o%2FTom%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, api.HealthDependencies{})

			h.get(t, tt.target)

			require.Equal(t, int32(1), h.upstream.calls.Load())
			assert.Equal(t, tt.wantPath, h.upstream.lastPath.Load())
		})
	}
}

/*
TestCountry_UpstreamDown answers 503 when the upstream cannot be reached.
*/
func TestCountry_UpstreamDown(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.upstream.server.Close()

	recorder := h.get(t, "/api/country/Japan")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "CONNECTION_ERROR")
}

/*
TestLabels negotiates the label locale.
*/
func TestLabels(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	tests := []struct {
		name    string
		target  string
		headers []string
		want    string
	}{
		{"default_locale", "/api/labels", nil, "tr"},
		{"query", "/api/labels?lang=en", nil, "en"},
		{"header", "/api/labels", []string{"Accept-Language", "en-GB,en;q=0.9"}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := h.get(t, tt.target, tt.headers...)
			require.Equal(t, http.StatusOK, recorder.Code)

			var set country.LabelSet
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &set))
			assert.Equal(t, tt.want, set.Locale)
			assert.NotEmpty(t, set.Labels["name"])
		})
	}
}

/*
TestHealth covers liveness and both readiness outcomes.
*/
func TestHealth(t *testing.T) {
	healthy := newHarness(t, api.HealthDependencies{})

	recorder := healthy.get(t, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)

	recorder = healthy.get(t, "/ready")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"entries":0`)

	degraded := newHarness(t, api.HealthDependencies{
		CheckCache: func(context.Context) error { return errors.New("redis: ping failed") },
	})
	recorder = degraded.get(t, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
}

/*
TestIndex serves the embedded page.
*/
func TestIndex(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	recorder := h.get(t, "/")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "/api/country/")
}

/*
TestCORS_Production allows configured origins only.
*/
func TestCORS_Production(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	allowed := h.get(t, "/health", "Origin", "https://atlas.example")
	assert.Equal(t, "https://atlas.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := h.get(t, "/health", "Origin", "https://elsewhere.example")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
