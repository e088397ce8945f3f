// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/metrics"
	"github.com/tomtom215/tokirank/internal/recommend"
)

// WeightedName is the registry name of WeightedRecommendation.
const WeightedName = "weighted-recommendation"

// WeightedRecommendation scores each event as the weighted sum of six
// signals (similarity, social, popularity, recency, geographic, novelty)
// and then runs the configured rerankers, by default the category
// diversity pass.
//
// Per call it issues one batch of user context reads through its provider.
// A read failure fails the call.
type WeightedRecommendation struct {
	provider recommend.ContextProvider
	opts     options
	logger   zerolog.Logger
}

var _ recommend.Strategy = (*WeightedRecommendation)(nil)

// NewWeightedRecommendation creates the strategy bound to provider.
func NewWeightedRecommendation(provider recommend.ContextProvider, opts ...Option) *WeightedRecommendation {
	o := buildOptions(opts)
	return &WeightedRecommendation{
		provider: provider,
		opts:     o,
		logger:   o.logger.With().Str("component", "recommend").Str("algorithm", WeightedName).Logger(),
	}
}

// Name returns the registry identifier.
func (w *WeightedRecommendation) Name() string {
	return WeightedName
}

// ScoreEvents implements recommend.Strategy.
func (w *WeightedRecommendation) ScoreEvents(ctx context.Context, events []recommend.Event, sc recommend.ScoringContext) ([]recommend.ScoredEvent, error) {
	if len(events) == 0 {
		metrics.RecordScoring(WeightedName, 0, 0, nil)
		return []recommend.ScoredEvent{}, nil
	}
	if w.provider == nil {
		return nil, fmt.Errorf("weighted recommendation: %w", recommend.ErrNoProvider)
	}

	start := time.Now()
	ctx, span := w.opts.tracer.Start(ctx, "WeightedRecommendation.ScoreEvents",
		trace.WithAttributes(
			attribute.Int("tokirank.user_id", sc.UserID),
			attribute.Int("tokirank.events", len(events)),
		))
	defer span.End()

	ids := make([]int, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	uc, err := recommend.LoadUserContext(ctx, w.provider, sc.UserID, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load user context")
		metrics.RecordScoring(WeightedName, len(events), time.Since(start), err)
		return nil, fmt.Errorf("weighted recommendation: %w", err)
	}

	now := w.opts.now()
	scored := make([]recommend.ScoredEvent, len(events))
	scoreBatch(events, scored, w.opts.parallelThreshold, func(e *recommend.Event) recommend.Signals {
		return computeSignals(e, &sc, uc, now)
	}, sc.Weights)

	for _, r := range w.opts.rerankers {
		scored = r.Rerank(ctx, scored, sc.Weights)
	}

	elapsed := time.Since(start)
	metrics.RecordScoring(WeightedName, len(events), elapsed, nil)
	w.logger.Debug().
		Int("user_id", sc.UserID).
		Int("events", len(events)).
		Int("connections", len(uc.Connections)).
		Dur("elapsed", elapsed).
		Msg("Scored batch")

	return scored, nil
}

// scoreBatch fills out[i] from events[i]. Batches of at least threshold
// events are split into contiguous chunks scored concurrently; each worker
// writes only its own index range.
func scoreBatch(events []recommend.Event, out []recommend.ScoredEvent, threshold int,
	signals func(*recommend.Event) recommend.Signals, weights recommend.AlgorithmWeights) {

	score := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s := signals(&events[i])
			out[i] = recommend.ScoredEvent{
				Event:   events[i],
				Score:   s.Weighted(weights),
				Signals: s,
			}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if threshold <= 0 || len(events) < threshold || workers < 2 {
		score(0, len(events))
		return
	}

	chunk := (len(events) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(events); lo += chunk {
		hi := min(lo+chunk, len(events))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			score(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
