// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package database is the relational store behind user context reads.
//
// DB implements recommend.ContextProvider over four tables: events,
// event_participants, saved_events and connections. Three drivers are
// supported through database/sql:
//
//   - duckdb (github.com/duckdb/duckdb-go/v2), embedded, the default
//   - sqlite (modernc.org/sqlite), embedded, pure Go
//   - postgres (github.com/lib/pq), for a shared production database
//
// Every read runs under the configured query timeout, inside a circuit
// breaker and an OpenTelemetry span, and is recorded in Prometheus.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/database/query"
	"github.com/tomtom215/tokirank/internal/logging"
)

const instrumentationName = "github.com/tomtom215/tokirank/internal/database"

// DB wraps a *sql.DB and serves user context reads.
type DB struct {
	conn         *sql.DB
	driver       string
	bind         query.BindStyle
	queryTimeout time.Duration
	breaker      *gobreaker.CircuitBreaker[struct{}]
	tracer       trace.Tracer
}

// New opens the configured driver, applies pool limits and verifies the
// connection.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if cfg.IsEmbedded() && !isMemoryDSN(cfg.DSN) {
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		dir := filepath.Dir(cfg.DSN)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:         conn,
		driver:       cfg.Driver,
		bind:         bindStyle(cfg.Driver),
		queryTimeout: cfg.QueryTimeout,
		tracer:       otel.Tracer(instrumentationName),
	}
	db.configureConnectionPool(cfg)

	if cfg.Breaker.Enabled {
		db.breaker = newBreaker(breakerName, cfg.Breaker)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Driver, err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Bool("breaker", cfg.Breaker.Enabled).
		Dur("query_timeout", cfg.QueryTimeout).
		Msg("Database connected")

	return db, nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool(cfg *config.DatabaseConfig) {
	maxOpen := cfg.MaxOpenConns
	// Every sqlite connection to ":memory:" is a separate database.
	if cfg.Driver == config.DriverSQLite && isMemoryDSN(cfg.DSN) {
		maxOpen = 1
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(min(cfg.MaxIdleConns, maxOpen))
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying pool to tests and seeders.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// rebind rewrites "?" placeholders for the configured driver.
func (db *DB) rebind(q string) string {
	return query.Rebind(db.bind, q)
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case config.DriverDuckDB:
		return "duckdb", nil
	case config.DriverSQLite:
		return "sqlite", nil
	case config.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func bindStyle(driver string) query.BindStyle {
	if driver == config.DriverPostgres {
		return query.Dollar
	}
	return query.Question
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, ":memory:?") || strings.HasPrefix(dsn, "file::memory:")
}

// closeQuietly closes a resource, ignoring errors.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// closeRows closes a result set, logging any error.
func closeRows(rows *sql.Rows, op string) {
	if err := rows.Close(); err != nil {
		logging.Warn().Str("operation", op).Err(err).Msg("Failed to close rows")
	}
}
