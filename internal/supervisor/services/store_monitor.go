// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tokirank/internal/metrics"
)

// Store is the probe surface of *database.DB.
type Store interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// StoreMonitorConfig tunes the probe loop.
type StoreMonitorConfig struct {
	Interval time.Duration // default 15s
	Timeout  time.Duration // per probe, default 2s
}

// StoreStatus is the result of the most recent probe.
type StoreStatus struct {
	Up           bool      `json:"up"`
	CheckedAt    time.Time `json:"checked_at"`
	Latency      string    `json:"latency,omitempty"`
	BreakerState string    `json:"breaker_state"`
	Error        string    `json:"error,omitempty"`
}

// StoreMonitor pings the store on an interval, logs up/down transitions and
// publishes tokirank_store_up. The health endpoint reads Status.
type StoreMonitor struct {
	store  Store
	config StoreMonitorConfig
	logger zerolog.Logger

	mu      sync.RWMutex
	status  StoreStatus
	checked bool
}

// NewStoreMonitor creates a monitor for store.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewStoreMonitor(store Store, cfg StoreMonitorConfig, logger zerolog.Logger) *StoreMonitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &StoreMonitor{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "store-monitor").Logger(),
	}
}

// Serve probes once immediately, then every Interval until ctx is canceled.
func (m *StoreMonitor) Serve(ctx context.Context) error {
	m.logger.Info().Dur("interval", m.config.Interval).Msg("store monitor starting")

	m.Probe(ctx)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("store monitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Probe runs one health check and records the result.
func (m *StoreMonitor) Probe(ctx context.Context) StoreStatus {
	probeCtx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	start := time.Now()
	err := m.store.Ping(probeCtx)
	st := StoreStatus{
		Up:           err == nil,
		CheckedAt:    start.UTC(),
		Latency:      time.Since(start).String(),
		BreakerState: m.store.BreakerState(),
	}
	if err != nil {
		st.Error = err.Error()
	}

	m.mu.Lock()
	prev, hadPrev := m.status, m.checked
	m.status, m.checked = st, true
	m.mu.Unlock()

	metrics.SetStoreUp(st.Up)

	switch {
	case !st.Up && (!hadPrev || prev.Up):
		m.logger.Warn().Err(err).Str("breaker", st.BreakerState).Msg("store unreachable")
	case st.Up && hadPrev && !prev.Up:
		m.logger.Info().Str("breaker", st.BreakerState).Msg("store recovered")
	default:
		m.logger.Debug().Bool("up", st.Up).Str("latency", st.Latency).Msg("store probe")
	}
	return st
}

// Status returns the last probe result. ok is false before the first probe.
func (m *StoreMonitor) Status() (status StoreStatus, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, m.checked
}

func (m *StoreMonitor) String() string {
	return "store-monitor"
}
