// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

/*
schema.go - Read Model Schema

Tables:
  - events: event id, category and host
  - event_participants: one row per (event, user) with a status such as
    approved, joined, completed, pending or declined
  - saved_events: events a user bookmarked
  - connections: directed requests between users; status 'accepted'
    makes the link mutual

The engine only reads these tables. The DDL sticks to types and syntax
shared by duckdb, sqlite and postgres.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/tokirank/internal/logging"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 60*time.Second)
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			category TEXT,
			host_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS event_participants (
			event_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (event_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS saved_events (
			user_id INTEGER NOT NULL,
			event_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, event_id)
		)`,
		`CREATE TABLE IF NOT EXISTS connections (
			requester_id INTEGER NOT NULL,
			addressee_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (requester_id, addressee_id)
		)`,
	}
}

func indexCreationQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_participants_user ON event_participants(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_user ON saved_events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_connections_addressee ON connections(addressee_id, status)`,
	}
}

// CreateSchema creates the read tables and their indexes if missing.
func (db *DB) CreateSchema(ctx context.Context) error {
	ctx, cancel := schemaContext(ctx)
	defer cancel()

	for _, q := range append(tableCreationQueries(), indexCreationQueries()...) {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", q, err)
		}
	}

	logging.Debug().Str("driver", db.driver).Msg("Schema ready")
	return nil
}
