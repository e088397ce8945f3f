// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package api

import (
	"context"
	"errors"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tokirank/internal/database"
	"github.com/tomtom215/tokirank/internal/models"
	"github.com/tomtom215/tokirank/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAlgorithmNotFound  = "ALGORITHM_NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeScoringTimeout     = "SCORING_TIMEOUT"
	CodeScoringFailed      = "SCORING_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// classifyError maps an engine or store error to a status and client-safe
// error body.
func classifyError(err error) (int, *models.APIError) {
	switch {
	case errors.Is(err, recommend.ErrUnknownAlgorithm):
		var cfgErr *recommend.ConfigError
		details := map[string]interface{}{}
		if errors.As(err, &cfgErr) {
			details["algorithm"] = cfgErr.Name
		}
		return http.StatusBadRequest, &models.APIError{
			Code:    CodeAlgorithmNotFound,
			Message: "Unknown algorithm",
			Details: details,
		}

	case errors.Is(err, database.ErrUnavailable),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable, &models.APIError{
			Code:    CodeServiceUnavailable,
			Message: "Recommendation store is temporarily unavailable",
		}

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &models.APIError{
			Code:    CodeScoringTimeout,
			Message: "Scoring timed out",
		}

	case errors.Is(err, recommend.ErrNoProvider):
		return http.StatusInternalServerError, &models.APIError{
			Code:    CodeInternal,
			Message: "Algorithm is not configured with a data source",
		}

	default:
		return http.StatusBadGateway, &models.APIError{
			Code:    CodeScoringFailed,
			Message: "Failed to load user context",
		}
	}
}
