// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"context"
	"time"

	"github.com/tomtom215/tokirank/internal/metrics"
	"github.com/tomtom215/tokirank/internal/recommend"
)

// PopularityName is the registry name of PopularityRecommendation.
const PopularityName = "popularity"

// PopularityRecommendation is a context-free baseline. It scores events by
// fill ratio and start-time proximity only:
//
//	score = w.Popularity*popularity + w.Recency*recency
//
// It issues no reads, which makes it usable for anonymous requests and as a
// fallback when the store is unavailable. The configured rerankers still run.
type PopularityRecommendation struct {
	opts options
}

var _ recommend.Strategy = (*PopularityRecommendation)(nil)

// NewPopularityRecommendation creates the baseline strategy.
func NewPopularityRecommendation(opts ...Option) *PopularityRecommendation {
	return &PopularityRecommendation{opts: buildOptions(opts)}
}

// Name returns the registry identifier.
func (p *PopularityRecommendation) Name() string {
	return PopularityName
}

// ScoreEvents implements recommend.Strategy.
func (p *PopularityRecommendation) ScoreEvents(ctx context.Context, events []recommend.Event, sc recommend.ScoringContext) ([]recommend.ScoredEvent, error) {
	if len(events) == 0 {
		metrics.RecordScoring(PopularityName, 0, 0, nil)
		return []recommend.ScoredEvent{}, nil
	}

	start := time.Now()
	ctx, span := p.opts.tracer.Start(ctx, "PopularityRecommendation.ScoreEvents")
	defer span.End()

	now := p.opts.now()
	scored := make([]recommend.ScoredEvent, len(events))
	scoreBatch(events, scored, p.opts.parallelThreshold, func(e *recommend.Event) recommend.Signals {
		return recommend.Signals{
			Popularity: Popularity(e.CurrentAttendees, e.MaxAttendees),
			Recency:    Recency(e.ScheduledAt, now),
		}
	}, recommend.AlgorithmWeights{Popularity: sc.Weights.Popularity, Recency: sc.Weights.Recency})

	for _, r := range p.opts.rerankers {
		scored = r.Rerank(ctx, scored, sc.Weights)
	}

	metrics.RecordScoring(PopularityName, len(events), time.Since(start), nil)
	return scored, nil
}
