// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package recommend

import "context"

// Strategy scores a batch of candidate events for one requester.
type Strategy interface {
	// Name returns the stable registry identifier.
	Name() string

	// ScoreEvents returns one ScoredEvent per input event, in input order.
	// An empty batch returns an empty slice without any reads. The only side
	// effects are read-only queries.
	ScoreEvents(ctx context.Context, events []Event, sc ScoringContext) ([]ScoredEvent, error)
}

// Reranker is a batch pass run after per-event scoring.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "diversity").
	Name() string

	// Rerank adjusts scores of items, which are in input order, and returns
	// them. It must not add or drop items.
	Rerank(ctx context.Context, items []ScoredEvent, weights AlgorithmWeights) []ScoredEvent
}

// ContextProvider is the read-only relational access a strategy needs.
// Implementations must be safe for concurrent use.
type ContextProvider interface {
	// CategoryParticipation counts the user's participations with status
	// approved, joined or completed, grouped by event category.
	CategoryParticipation(ctx context.Context, userID int) (map[string]int, error)

	// SavedCategoryCounts counts the user's saved events, grouped by category.
	SavedCategoryCounts(ctx context.Context, userID int) (map[string]int, error)

	// AcceptedConnections returns the distinct users with an accepted
	// connection to userID, in either direction.
	AcceptedConnections(ctx context.Context, userID int) ([]int, error)

	// ConnectionParticipation counts, per event in eventIDs, how many users in
	// userIDs have an approved participation.
	ConnectionParticipation(ctx context.Context, userIDs, eventIDs []int) (map[int]int, error)
}

// Factory builds a Strategy bound to a ContextProvider. The provider may be
// nil when the registry has no default and the caller supplied none.
type Factory func(provider ContextProvider) (Strategy, error)
