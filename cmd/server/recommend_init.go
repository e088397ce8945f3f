// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/recommend"
	"github.com/tomtom215/tokirank/internal/recommend/algorithms"
	"github.com/tomtom215/tokirank/internal/recommend/reranking"
)

// initRegistry builds the algorithm registry over provider and resolves the
// default algorithm once so a misconfigured name fails at startup rather
// than on the first request.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRegistry(cfg *config.RecommendConfig, provider recommend.ContextProvider, tp trace.TracerProvider, logger zerolog.Logger) (*recommend.Registry, error) {
	reg := recommend.NewRegistry(provider, logger)

	algorithms.RegisterBuiltins(reg,
		algorithms.WithRerankers(reranking.NewDiversity(cfg.DiversityThreshold, cfg.DiversityStep)),
		algorithms.WithParallelThreshold(cfg.ParallelThreshold),
		algorithms.WithLogger(logger),
		algorithms.WithTracerProvider(tp),
	)

	if _, err := reg.Get(cfg.DefaultAlgorithm, nil); err != nil {
		return nil, fmt.Errorf("resolve default algorithm: %w", err)
	}

	logger.Info().
		Strs("algorithms", reg.Names()).
		Str("default", cfg.DefaultAlgorithm).
		Int("diversity_threshold", cfg.DiversityThreshold).
		Float64("diversity_step", cfg.DiversityStep).
		Int("parallel_threshold", cfg.ParallelThreshold).
		Msg("Recommendation registry initialized")

	return reg, nil
}
