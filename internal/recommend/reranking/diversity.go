// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package reranking implements batch passes that run after per-event scoring.
package reranking

import (
	"context"

	"github.com/tomtom215/tokirank/internal/metrics"
	"github.com/tomtom215/tokirank/internal/recommend"
)

// Default diversity tuning.
const (
	DefaultDiversityThreshold = 3
	DefaultDiversityStep      = 0.1
)

// Diversity discounts over-represented categories within one batch.
//
// It walks the batch once in input order keeping a running count per
// category. The Nth event of a category with N > threshold loses
//
//	weights.Penalty * (N - threshold) * step
//
// from its score. Earlier events are untouched. The pass never reorders, so
// which events count as "4th, 5th, ..." is fixed by the order the caller
// supplied the candidates in.
//
// The scores are not clamped and can go negative under a large penalty
// weight.
type Diversity struct {
	threshold int
	step      float64
}

// NewDiversity creates a diversity pass. A negative threshold or step falls
// back to the defaults.
func NewDiversity(threshold int, step float64) *Diversity {
	if threshold < 0 {
		threshold = DefaultDiversityThreshold
	}
	if step < 0 {
		step = DefaultDiversityStep
	}
	return &Diversity{threshold: threshold, step: step}
}

// Name returns the reranker identifier.
func (d *Diversity) Name() string {
	return "diversity"
}

// Rerank applies the penalty in place and returns items.
func (d *Diversity) Rerank(_ context.Context, items []recommend.ScoredEvent, weights recommend.AlgorithmWeights) []recommend.ScoredEvent {
	seen := make(map[string]int)
	penalized := 0

	for i := range items {
		cat := items[i].Event.CategoryKey()
		seen[cat]++
		n := seen[cat]
		if n <= d.threshold {
			continue
		}

		p := weights.Penalty * float64(n-d.threshold) * d.step
		items[i].Score -= p
		items[i].Penalty += p
		if p > 0 {
			penalized++
		}
	}

	metrics.RecordDiversityPenalties(penalized)
	return items
}
