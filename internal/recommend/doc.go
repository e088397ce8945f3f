// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package recommend defines the event scoring contract and the pieces shared
// by every scoring algorithm.
//
// # Overview
//
// A caller (the HTTP layer) hands a batch of candidate events and a
// ScoringContext to a Strategy. The strategy returns one ScoredEvent per
// input event, in input order. Sorting, pagination and fallback ordering
// are the caller's job.
//
// # Components
//
//   - Strategy: the scoring contract (ScoreEvents, Name)
//   - Registry: lazy, cached name -> Strategy lookup with test overrides
//   - ContextProvider: the read-only relational facts a strategy may need
//   - LoadUserContext: runs the context reads (three in parallel, one dependent)
//   - Reranker: post-scoring batch passes such as the category diversity penalty
//
// Concrete algorithms live in the algorithms subpackage and rerankers in
// reranking. Neither is imported here; cmd/server wires them into a Registry.
//
// # Usage
//
//	reg := recommend.NewRegistry(store, logger)
//	algorithms.RegisterBuiltins(reg, algorithms.Options{})
//
//	strategy, err := reg.Get(algorithms.WeightedName, nil)
//	if err != nil {
//	    return err // errors.Is(err, recommend.ErrUnknownAlgorithm)
//	}
//	scored, err := strategy.ScoreEvents(ctx, events, recommend.ScoringContext{
//	    UserID:  userID,
//	    Weights: weights,
//	})
//
// # Failure Semantics
//
// Any context read failure aborts the whole call. Strategies never retry and
// never score against a partial UserContext.
//
// # Thread Safety
//
// Strategies are stateless apart from their read-only provider and are safe
// for concurrent use. The Registry is safe for concurrent use.
package recommend
