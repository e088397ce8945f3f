// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/tokirank/internal/logging"
	"github.com/tomtom215/tokirank/internal/models"
	"github.com/tomtom215/tokirank/internal/recommend"
)

// ScoreEvents handles POST /api/v1/recommendations/score.
//
// The request names the requester, an optional algorithm and weight
// override, and the candidate batch. The response holds one scored item per
// candidate in request order.
func (h *Handler) ScoreEvents(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.ScoreRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if limit := h.recommend.MaxBatchSize; limit > 0 && len(req.Events) > limit {
		respondError(w, r, http.StatusBadRequest, validationError(
			fmt.Sprintf("events must be at most %d items", limit),
			map[string]interface{}{"field": "events", "tag": "max", "value": len(req.Events)},
		), nil)
		return
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = h.recommend.DefaultAlgorithm
	}
	strategy, err := h.registry.Get(algorithm, nil)
	if err != nil {
		status, apiErr := classifyError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	weights := h.defaultWeights()
	if req.Weights != nil {
		weights = req.Weights.ToWeights()
	}

	events := make([]recommend.Event, len(req.Events))
	for i := range req.Events {
		events[i] = req.Events[i].ToEvent()
	}
	sc := recommend.ScoringContext{
		UserID:   req.UserID,
		Location: req.Location.ToCoordinates(),
		Weights:  weights,
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	scored, err := strategy.ScoreEvents(ctx, events, sc)
	if err != nil {
		status, apiErr := classifyError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("algorithm", strategy.Name()).
		Int("user_id", req.UserID).
		Int("events", len(scored)).
		Dur("duration", time.Since(started)).
		Msg("Scored events")

	respondSuccess(w, r, models.ScoreResponse{
		Algorithm: strategy.Name(),
		Count:     len(scored),
		Weights:   weights,
		Items:     scored,
	}, started)
}

// ListAlgorithms handles GET /api/v1/recommendations/algorithms.
func (h *Handler) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.AlgorithmsResponse{
		Default:    h.recommend.DefaultAlgorithm,
		Algorithms: h.registry.Names(),
	}, time.Time{})
}
