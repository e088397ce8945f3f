// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be one of duckdb, postgres, sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %v", c.Database.QueryTimeout)
	}
	if c.Database.SeedMockData && !c.Database.IsEmbedded() {
		return fmt.Errorf("SEED_MOCK_DATA is only supported for embedded drivers")
	}

	b := c.Database.Breaker
	if b.Enabled {
		if b.FailureRatio <= 0 || b.FailureRatio > 1 {
			return fmt.Errorf("DB_BREAKER_FAILURE_RATIO must be in (0, 1], got %f", b.FailureRatio)
		}
		if b.Timeout <= 0 {
			return fmt.Errorf("DB_BREAKER_TIMEOUT must be positive, got %v", b.Timeout)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if strings.TrimSpace(r.DefaultAlgorithm) == "" {
		return fmt.Errorf("RECOMMEND_DEFAULT_ALGORITHM is required")
	}

	w := r.Weights
	named := []struct {
		name  string
		value float64
	}{
		{"history", w.History},
		{"social", w.Social},
		{"popularity", w.Popularity},
		{"recency", w.Recency},
		{"geographic", w.Geographic},
		{"novelty", w.Novelty},
		{"penalty", w.Penalty},
	}
	for _, n := range named {
		if n.value < 0 {
			return fmt.Errorf("recommend weight %s must be non-negative, got %f", n.name, n.value)
		}
	}

	if r.DiversityThreshold < 0 {
		return fmt.Errorf("RECOMMEND_DIVERSITY_THRESHOLD must be non-negative, got %d", r.DiversityThreshold)
	}
	if r.DiversityStep < 0 {
		return fmt.Errorf("RECOMMEND_DIVERSITY_STEP must be non-negative, got %f", r.DiversityStep)
	}
	if r.ParallelThreshold < 0 {
		return fmt.Errorf("RECOMMEND_PARALLEL_THRESHOLD must be non-negative, got %d", r.ParallelThreshold)
	}
	if r.MaxBatchSize < 1 {
		return fmt.Errorf("RECOMMEND_MAX_BATCH_SIZE must be at least 1, got %d", r.MaxBatchSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	for _, origin := range s.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain a wildcard")
		}
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", s.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
