// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

/*
Package supervisor runs Tokirank's long-lived services under suture v4.

The tree has two layers so a failing component restarts in isolation:

	tokirank
	├── data-layer
	│   └── StoreMonitor
	└── api-layer
	    └── HTTPServerService

Supervisor events (start, stop, panic, backoff) go to a slog.Logger through
sutureslog; cmd/server passes logging.NewSlogLogger so they land in the same
zerolog stream as everything else.

# Usage

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewStoreMonitor(db, services.StoreMonitorConfig{}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := tree.Serve(ctx)

# Restart Policy

Each service failure bumps a counter that decays over FailureDecay seconds.
Past FailureThreshold the supervisor waits FailureBackoff before the next
restart. A service returning nil is not restarted; returning
suture.ErrDoNotRestart stops it permanently.

The database handle itself is not supervised. It is a pool, not a goroutine,
and its failures surface through the circuit breaker and StoreMonitor.
*/
package supervisor
