// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package algorithms implements the event scoring strategies.
//
//   - WeightedRecommendation ("weighted-recommendation"): six-signal weighted
//     sum over per-user context, followed by the category diversity pass
//   - PopularityRecommendation ("popularity"): popularity and recency only,
//     no context reads; a cold-start baseline
//
// Both are stateless apart from their configuration and safe for concurrent
// use. RegisterBuiltins makes them resolvable through a recommend.Registry.
package algorithms

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/recommend"
	"github.com/tomtom215/tokirank/internal/recommend/reranking"
)

const instrumentationName = "github.com/tomtom215/tokirank/internal/recommend/algorithms"

// Option configures a strategy.
type Option func(*options)

type options struct {
	rerankers         []recommend.Reranker
	parallelThreshold int
	now               func() time.Time
	logger            zerolog.Logger
	tracer            trace.Tracer
}

func defaultOptions() options {
	return options{
		rerankers: []recommend.Reranker{
			reranking.NewDiversity(reranking.DefaultDiversityThreshold, reranking.DefaultDiversityStep),
		},
		parallelThreshold: 256,
		now:               time.Now,
		logger:            zerolog.Nop(),
		tracer:            otel.Tracer(instrumentationName),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRerankers replaces the post-scoring passes. Passing none disables them.
func WithRerankers(r ...recommend.Reranker) Option {
	return func(o *options) {
		o.rerankers = r
	}
}

// WithParallelThreshold sets the batch size at which per-event scoring is
// spread across goroutines. Zero or less keeps scoring sequential.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		o.parallelThreshold = n
	}
}

// WithClock overrides the time source used by the recency signal.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger. The component field is added by the strategy.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracerProvider uses tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp.Tracer(instrumentationName)
		}
	}
}
