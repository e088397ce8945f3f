// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

//go:build integration

package testinfra

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"
)

// dockerAvailable runs `docker info` once per test binary.
var dockerAvailable = sync.OnceValue(func() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
})

// RequireDocker skips t when no Docker daemon answers.
func RequireDocker(t testing.TB) {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("docker daemon not reachable")
	}
}

// StartPostgres starts a postgres container for t and terminates it when t
// finishes. t is skipped without Docker and fails if the container never
// becomes ready.
func StartPostgres(t testing.TB, opts ...PostgresOption) *PostgresContainer {
	t.Helper()
	RequireDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := NewPostgresContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
		defer stop()
		if err := pg.Terminate(stopCtx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})
	return pg
}
