// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

/*
Package main is the entry point for the Tokirank server.

Tokirank scores a batch of candidate events for one user. Each event gets a
weighted blend of history, social, popularity, recency, geographic and
novelty signals, less a repeated-category diversity penalty, and comes back
in the order the caller sent it.

# Application Architecture

	RootSupervisor ("tokirank")
	├── DataSupervisor ("data-layer")
	│   └── StoreMonitor (periodic ping, breaker state, store_up gauge)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Startup order:

 1. Configuration: Koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Telemetry: OpenTelemetry tracer provider (noop unless enabled)
 4. Database: DuckDB, SQLite or PostgreSQL behind a circuit breaker
 5. Schema and demo data (embedded drivers only)
 6. Registry: built-in algorithms, default algorithm resolved eagerly
 7. Supervisor Tree: Suture v4, shut down on SIGINT or SIGTERM

# Configuration

	Priority: Environment variables > Config file > Defaults

The config file is read from CONFIG_PATH, else config.yaml in the working
directory, else /etc/tokirank/config.yaml.

	# Server
	HTTP_PORT=8087
	HTTP_TIMEOUT=30s
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Storage
	DB_DRIVER=duckdb             # duckdb, sqlite or postgres
	DB_DSN=/data/tokirank.duckdb
	DB_HEALTH_CHECK_INTERVAL=15s
	DB_BREAKER_ENABLED=true
	SEED_MOCK_DATA=false

	# Scoring
	RECOMMEND_DEFAULT_ALGORITHM=weighted-recommendation
	RECOMMEND_DIVERSITY_THRESHOLD=3
	RECOMMEND_DIVERSITY_STEP=0.1
	RECOMMEND_MAX_BATCH_SIZE=1000

	# Tracing
	OTEL_TRACING_ENABLED=false

# Usage

	go build -o tokirank ./cmd/server
	DB_DRIVER=sqlite DB_DSN=:memory: SEED_MOCK_DATA=true ./tokirank

	curl -s localhost:8087/api/v1/recommendations/score \
	  -H 'Content-Type: application/json' \
	  -d '{"user_id":1,"events":[{"id":1,"category":"music"}]}'
*/
package main
