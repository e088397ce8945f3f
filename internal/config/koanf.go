// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tokirank/config.yaml",
	"/etc/tokirank/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is layer 1. File and environment values override it.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8087,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			DSN:          "/data/tokirank.duckdb",
			MaxOpenConns: 16,
			MaxIdleConns: 4,
			QueryTimeout: 5 * time.Second,
			CreateSchema: true,
			SeedMockData: false,

			HealthCheckInterval: 15 * time.Second,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Recommend: RecommendConfig{
			DefaultAlgorithm: "weighted-recommendation",
			Weights: WeightsConfig{
				History:    0.25,
				Social:     0.20,
				Popularity: 0.15,
				Recency:    0.15,
				Geographic: 0.15,
				Novelty:    0.10,
				Penalty:    0.5,
			},
			DiversityThreshold: 3,
			DiversityStep:      0.1,
			ParallelThreshold:  256,
			MaxBatchSize:       1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			TracingEnabled: false,
			ServiceName:    "tokirank",
			SampleRatio:    1.0,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Load builds the configuration from, in increasing priority:
//
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. environment variables (see envMappings)
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"db_driver":         "database.driver",
	"db_dsn":            "database.dsn",
	"db_max_open_conns": "database.max_open_conns",
	"db_max_idle_conns": "database.max_idle_conns",
	"db_query_timeout":  "database.query_timeout",
	"db_create_schema":  "database.create_schema",
	"seed_mock_data":    "database.seed_mock_data",

	"db_health_check_interval": "database.health_check_interval",

	"db_breaker_enabled":       "database.breaker.enabled",
	"db_breaker_max_requests":  "database.breaker.max_requests",
	"db_breaker_interval":      "database.breaker.interval",
	"db_breaker_timeout":       "database.breaker.timeout",
	"db_breaker_min_requests":  "database.breaker.min_requests",
	"db_breaker_failure_ratio": "database.breaker.failure_ratio",

	"recommend_default_algorithm":   "recommend.default_algorithm",
	"recommend_weight_history":      "recommend.weights.history",
	"recommend_weight_social":       "recommend.weights.social",
	"recommend_weight_popularity":   "recommend.weights.popularity",
	"recommend_weight_recency":      "recommend.weights.recency",
	"recommend_weight_geographic":   "recommend.weights.geographic",
	"recommend_weight_novelty":      "recommend.weights.novelty",
	"recommend_weight_penalty":      "recommend.weights.penalty",
	"recommend_diversity_threshold": "recommend.diversity_threshold",
	"recommend_diversity_step":      "recommend.diversity_step",
	"recommend_parallel_threshold":  "recommend.parallel_threshold",
	"recommend_max_batch_size":      "recommend.max_batch_size",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"otel_tracing_enabled": "telemetry.tracing_enabled",
	"otel_service_name":    "telemetry.service_name",
	"otel_sample_ratio":    "telemetry.sample_ratio",

	"cors_origins":        "security.cors_origins",
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"rate_limit_disabled": "security.rate_limit_disabled",
}

// envTransformFunc returns "" for variables that are not configuration, which
// tells koanf to skip them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
