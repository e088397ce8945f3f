// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

/*
Package api exposes the scoring engine over HTTP with a chi router.

# Endpoints

	POST /api/v1/recommendations/score        score a candidate batch
	GET  /api/v1/recommendations/algorithms   list algorithm names
	GET  /api/v1/health                       store and breaker status
	GET  /api/v1/health/live                  liveness
	GET  /api/v1/health/ready                 readiness (503 while the store is down)
	GET  /metrics                             Prometheus exposition

# Score Request

	{
	  "user_id": 1,
	  "algorithm": "weighted-recommendation",
	  "location": {"lat": 40.71, "lng": -74.0},
	  "weights": {"history": 0.25, "social": 0.2, "popularity": 0.15,
	              "recency": 0.15, "geographic": 0.15, "novelty": 0.1, "penalty": 0.5},
	  "events": [
	    {"id": 5, "category": "music", "max_attendees": 20, "current_attendees": 12,
	     "scheduled_at": "2026-03-02T19:00:00Z", "host_id": 4}
	  ]
	}

algorithm and weights are optional; the configured defaults apply. Items
come back in request order with the per-signal breakdown and any diversity
penalty. The server never sorts.

# Errors

Every failure uses the models.APIResponse envelope with an error code:
VALIDATION_ERROR and ALGORITHM_NOT_FOUND (400), SERVICE_UNAVAILABLE (503,
store down or breaker open), SCORING_TIMEOUT (504), SCORING_FAILED (502).
*/
package api
