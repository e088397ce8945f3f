// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/recommend"
	"github.com/tomtom215/tokirank/internal/supervisor/services"
)

// Version is reported by the health endpoint. Set with -ldflags at build time.
var Version = "dev"

// Store is what the health endpoints need from *database.DB.
type Store interface {
	Driver() string
	Ping(ctx context.Context) error
	BreakerState() string
}

// StoreStatusSource reports the last background probe of the store.
type StoreStatusSource interface {
	Status() (services.StoreStatus, bool)
}

// Dependencies wires a Handler. Registry and Store are required.
type Dependencies struct {
	Registry  *recommend.Registry
	Store     Store
	Recommend config.RecommendConfig

	// Monitor, when set, answers health checks from its last probe
	// instead of pinging the store per request.
	Monitor StoreStatusSource

	// RequestTimeout bounds one scoring call. Zero means no extra bound.
	RequestTimeout time.Duration

	TracingEnabled bool
}

// Handler serves the scoring and health endpoints.
type Handler struct {
	registry       *recommend.Registry
	store          Store
	monitor        StoreStatusSource
	recommend      config.RecommendConfig
	requestTimeout time.Duration
	tracingEnabled bool
	startTime      time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		registry:       deps.Registry,
		store:          deps.Store,
		monitor:        deps.Monitor,
		recommend:      deps.Recommend,
		requestTimeout: deps.RequestTimeout,
		tracingEnabled: deps.TracingEnabled,
		startTime:      time.Now(),
	}
}

// defaultWeights converts the configured weight set.
func (h *Handler) defaultWeights() recommend.AlgorithmWeights {
	w := h.recommend.Weights
	return recommend.AlgorithmWeights{
		History:    w.History,
		Social:     w.Social,
		Popularity: w.Popularity,
		Recency:    w.Recency,
		Geographic: w.Geographic,
		Novelty:    w.Novelty,
		Penalty:    w.Penalty,
	}
}
