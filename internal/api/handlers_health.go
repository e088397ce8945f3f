// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/tokirank/internal/models"
)

const healthPingTimeout = 2 * time.Second

// storeUp prefers the background monitor's last result and falls back to a
// direct ping before the first probe has run.
func (h *Handler) storeUp(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	if h.monitor != nil {
		if st, ok := h.monitor.Status(); ok {
			return st.Up
		}
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.store.Ping(ctx) == nil
}

// Health handles GET /api/v1/health. It always answers 200; Status is
// "degraded" while the store is unreachable or its breaker is not closed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	up := h.storeUp(r.Context())

	driver, breaker := "none", "disabled"
	if h.store != nil {
		driver, breaker = h.store.Driver(), h.store.BreakerState()
	}

	status := "healthy"
	if !up || (breaker != "closed" && breaker != "disabled") {
		status = "degraded"
	}

	respondSuccess(w, r, models.HealthStatus{
		Status:         status,
		Version:        Version,
		Database:       driver,
		DatabaseUp:     up,
		BreakerState:   breaker,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
		TracingEnabled: h.tracingEnabled,
	}, time.Time{})
}

// HealthLive handles GET /api/v1/health/live. It reports process liveness
// only and never touches the store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Time{})
}

// HealthReady handles GET /api/v1/health/ready: 503 until the store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.storeUp(r.Context()) {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    CodeServiceUnavailable,
			Message: "Recommendation store is not reachable",
		}, nil)
		return
	}
	respondSuccess(w, r, map[string]interface{}{"ready": true}, time.Time{})
}
