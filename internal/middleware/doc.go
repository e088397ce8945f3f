// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package middleware provides the chi middleware stack of the HTTP API.
//
//   - RequestID: X-Request-ID propagation into the logging context
//   - AccessLog: one zerolog line per request
//   - PrometheusMetrics: request counts, latency and in-flight gauge,
//     labelled by chi route pattern
//   - Security.CORS and Security.RateLimit: go-chi/cors and go-chi/httprate
//     configured from config.SecurityConfig
//
// All middleware has the func(http.Handler) http.Handler shape:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID, chimiddleware.RealIP, middleware.AccessLog)
//	r.Use(middleware.PrometheusMetrics)
package middleware
