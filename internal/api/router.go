// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/middleware"
	"github.com/tomtom215/tokirank/internal/models"
)

// NewRouter builds the HTTP handler tree.
//
//	GET  /metrics
//	GET  /api/v1/health[/live|/ready]
//	POST /api/v1/recommendations/score
//	GET  /api/v1/recommendations/algorithms
//
// When tp is non-nil every request gets a server span.
func NewRouter(h *Handler, sec *middleware.Security, tp trace.TracerProvider) http.Handler {
	r := chi.NewRouter()

	// Order matters: the request id must exist before the access log and
	// Recoverer must sit inside both so panics are logged as 500s.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(sec.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, &models.APIError{Code: CodeNotFound, Message: "Not found"}, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{Code: CodeMethodNotAllowed, Message: "Method not allowed"}, nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Use(sec.RateLimit())
			r.Post("/score", h.ScoreEvents)
			r.Get("/algorithms", h.ListAlgorithms)
		})
	})

	if tp == nil {
		return r
	}
	return otelhttp.NewHandler(r, "tokirank",
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}
