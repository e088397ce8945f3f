// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package config loads Tokirank configuration from defaults, an optional YAML
// file, and environment variables (in increasing priority) using koanf.
//
// # Sections
//
//   - server: HTTP listener
//   - database: relational store driver, DSN, pool and circuit breaker
//   - recommend: default algorithm, signal weights, diversity pass tuning
//   - logging: zerolog level and format
//   - telemetry: OpenTelemetry tracing
//   - security: CORS and rate limiting for the scoring API
//
// # Environment Variables
//
// Every setting has a flat environment variable; see envMappings in koanf.go.
// A few common ones:
//
//   - HTTP_PORT, HTTP_HOST
//   - DB_DRIVER (duckdb, postgres, sqlite), DB_DSN
//   - RECOMMEND_DEFAULT_ALGORITHM
//   - RECOMMEND_WEIGHT_HISTORY ... RECOMMEND_WEIGHT_PENALTY
//   - LOG_LEVEL, LOG_FORMAT
//   - CORS_ORIGINS (comma separated)
package config

import (
	"net"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig selects the relational store that backs user context reads.
//
// duckdb and sqlite are embedded; DSN is a file path or ":memory:". postgres
// takes a libpq connection string.
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"`
	DSN          string        `koanf:"dsn"`
	MaxOpenConns int           `koanf:"max_open_conns"`
	MaxIdleConns int           `koanf:"max_idle_conns"`
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// CreateSchema creates the read tables on startup. Embedded drivers only.
	CreateSchema bool `koanf:"create_schema"`
	SeedMockData bool `koanf:"seed_mock_data"`

	// HealthCheckInterval is how often the store monitor pings the store.
	HealthCheckInterval time.Duration `koanf:"health_check_interval"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker around store reads.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"` // allowed through while half-open
	Interval     time.Duration `koanf:"interval"`     // closed-state counter reset
	Timeout      time.Duration `koanf:"timeout"`      // open duration before half-open
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// RecommendConfig holds scoring defaults supplied to the engine per request.
type RecommendConfig struct {
	DefaultAlgorithm   string        `koanf:"default_algorithm"`
	Weights            WeightsConfig `koanf:"weights"`
	DiversityThreshold int           `koanf:"diversity_threshold"`
	DiversityStep      float64       `koanf:"diversity_step"`

	// ParallelThreshold is the batch size at which per-event scoring fans out
	// across goroutines. Zero disables parallel scoring.
	ParallelThreshold int `koanf:"parallel_threshold"`

	// MaxBatchSize caps candidate events per API request.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// WeightsConfig is the default signal weight set. Requests may override it.
type WeightsConfig struct {
	History    float64 `koanf:"history"`
	Social     float64 `koanf:"social"`
	Popularity float64 `koanf:"popularity"`
	Recency    float64 `koanf:"recency"`
	Geographic float64 `koanf:"geographic"`
	Novelty    float64 `koanf:"novelty"`
	Penalty    float64 `koanf:"penalty"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	TracingEnabled bool    `koanf:"tracing_enabled"`
	ServiceName    string  `koanf:"service_name"`
	SampleRatio    float64 `koanf:"sample_ratio"`
}

// SecurityConfig covers the public surface of the scoring API.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsEmbedded reports whether the driver runs in-process.
func (d DatabaseConfig) IsEmbedded() bool {
	return d.Driver == DriverDuckDB || d.Driver == DriverSQLite
}
