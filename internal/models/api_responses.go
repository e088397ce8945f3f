// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for every JSON endpoint.
//
//	{
//	  "status": "success",
//	  "data": {"algorithm": "weighted-recommendation", "count": 2, "items": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "...", "query_time_ms": 4}
//	}
//
// On failure Status is "error", Data is null and Error is set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the machine-readable failure description.
//
// Codes used by the scoring API:
//   - VALIDATION_ERROR: malformed or out-of-range request body
//   - ALGORITHM_NOT_FOUND: unknown algorithm name
//   - SERVICE_UNAVAILABLE: the store is down or its circuit breaker is open
//   - SCORING_FAILED: a context read failed while scoring
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
