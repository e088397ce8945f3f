// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"github.com/tomtom215/tokirank/internal/recommend"
)

// RegisterBuiltins registers factories for every strategy in this package.
// opts are applied to each constructed instance.
func RegisterBuiltins(reg *recommend.Registry, opts ...Option) {
	reg.RegisterFactory(WeightedName, func(p recommend.ContextProvider) (recommend.Strategy, error) {
		if p == nil {
			return nil, recommend.ErrNoProvider
		}
		return NewWeightedRecommendation(p, opts...), nil
	})
	reg.RegisterFactory(PopularityName, func(recommend.ContextProvider) (recommend.Strategy, error) {
		return NewPopularityRecommendation(opts...), nil
	})
}
