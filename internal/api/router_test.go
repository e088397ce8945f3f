// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/middleware"
	"github.com/tomtom215/tokirank/internal/models"
	"github.com/tomtom215/tokirank/internal/supervisor/services"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		down       bool
		breaker    string
		monitor    StoreStatusSource
		wantStatus string
		wantUp     bool
		wantPings  int32
	}{
		{"store up", false, "closed", nil, "healthy", true, 1},
		{"store down", true, "closed", nil, "degraded", false, 1},
		{"breaker open", false, "open", nil, "degraded", true, 1},
		{"breaker disabled", false, "disabled", nil, "healthy", true, 1},
		{
			name:       "monitor result preferred",
			monitor:    fixedStatus{status: services.StoreStatus{Up: false}, ok: true},
			wantStatus: "degraded",
			wantUp:     false,
			wantPings:  0,
		},
		{
			name:       "monitor not yet probed",
			monitor:    fixedStatus{},
			wantStatus: "healthy",
			wantUp:     true,
			wantPings:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t, tt.monitor)
			s.store.down.Store(tt.down)
			s.store.breaker = tt.breaker

			rec, env := s.do(t, http.MethodGet, "/api/v1/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			hs := decodeData[models.HealthStatus](t, env)
			if hs.Status != tt.wantStatus || hs.DatabaseUp != tt.wantUp {
				t.Errorf("health = %+v, want status %s up %v", hs, tt.wantStatus, tt.wantUp)
			}
			if hs.Database != "duckdb" || hs.Version != Version {
				t.Errorf("health = %+v", hs)
			}
			if got := s.store.pings.Load(); got != tt.wantPings {
				t.Errorf("pings = %d, want %d", got, tt.wantPings)
			}
		})
	}
}

func TestHealthLiveIgnoresStore(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.store.down.Store(true)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if s.store.pings.Load() != 0 {
		t.Error("liveness probe pinged the store")
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	if rec, _ := s.do(t, http.MethodGet, "/api/v1/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready with store up: status = %d", rec.Code)
	}

	s.store.down.Store(true)
	rec, env := s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready with store down: status = %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeServiceUnavailable {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouterJSONErrors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	tests := []struct {
		method, path string
		wantStatus   int
		wantCode     string
	}{
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound, CodeNotFound},
		{http.MethodGet, "/api/v1/recommendations/score", http.StatusMethodNotAllowed, CodeMethodNotAllowed},
		{http.MethodDelete, "/api/v1/health/live", http.StatusMethodNotAllowed, CodeMethodNotAllowed},
	}
	for _, tt := range tests {
		rec, env := s.do(t, tt.method, tt.path, "")
		if rec.Code != tt.wantStatus {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			continue
		}
		if env.Status != models.StatusError || env.Error == nil || env.Error.Code != tt.wantCode {
			t.Errorf("%s %s: envelope = %+v", tt.method, tt.path, env)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	// Generate at least one labelled series.
	s.do(t, http.MethodGet, "/api/v1/health/live", "")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tokirank_api_requests_total") {
		t.Error("exposition missing tokirank_api_requests_total")
	}
}

func TestRouterTracing(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	s := newTestServer(t, nil)
	h := NewHandler(Dependencies{Registry: s.registry, Store: s.store, Recommend: testRecommendConfig()})
	router := NewRouter(h, middleware.NewSecurity(config.SecurityConfig{RateLimitDisabled: true}), tp)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if name := spans[0].Name(); name != "GET /api/v1/health/live" {
		t.Errorf("span name = %q", name)
	}
}

func TestScoreEventsRateLimited(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	h := NewHandler(Dependencies{Registry: s.registry, Store: s.store, Recommend: testRecommendConfig()})
	sec := middleware.NewSecurity(config.SecurityConfig{RateLimitReqs: 1, RateLimitWindow: time.Minute})
	router := NewRouter(h, sec, nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/algorithms", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}

	// Health is outside the limited group.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("health status = %d", rec.Code)
		}
	}
}
