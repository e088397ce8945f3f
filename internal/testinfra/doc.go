// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package testinfra starts containers for integration tests.
//
// Files are guarded by the "integration" build tag:
//
//	go test -tags integration ./internal/database/...
//
// # Postgres
//
//	pg := testinfra.StartPostgres(t) // terminated by t.Cleanup
//
//	db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN, ...})
//
// Tests are skipped when no Docker daemon is reachable. The first run pulls
// the image.
package testinfra
