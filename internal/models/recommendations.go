// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package models

import (
	"time"

	"github.com/tomtom215/tokirank/internal/recommend"
)

// ScoreRequest is the body of POST /api/v1/recommendations/score.
//
// The batch size cap is configurable, so it is enforced by the handler
// rather than by a tag.
type ScoreRequest struct {
	UserID    int            `json:"user_id" validate:"gte=1"`
	Algorithm string         `json:"algorithm,omitempty" validate:"omitempty,max=64"`
	Location  *LocationInput `json:"location,omitempty" validate:"omitempty"`
	Weights   *WeightsInput  `json:"weights,omitempty" validate:"omitempty"`
	Events    []EventInput   `json:"events" validate:"required,unique=ID,dive"`
}

// LocationInput is the requester's position.
type LocationInput struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// WeightsInput overrides the configured weight set for one request. All
// fields are required so a partial override cannot silently zero a signal.
type WeightsInput struct {
	History    *float64 `json:"history" validate:"required,gte=0"`
	Social     *float64 `json:"social" validate:"required,gte=0"`
	Popularity *float64 `json:"popularity" validate:"required,gte=0"`
	Recency    *float64 `json:"recency" validate:"required,gte=0"`
	Geographic *float64 `json:"geographic" validate:"required,gte=0"`
	Novelty    *float64 `json:"novelty" validate:"required,gte=0"`
	Penalty    *float64 `json:"penalty" validate:"required,gte=0"`
}

// EventInput is one candidate event.
type EventInput struct {
	ID               int            `json:"id" validate:"gte=1"`
	Category         string         `json:"category" validate:"category"`
	ScheduledAt      *time.Time     `json:"scheduled_at,omitempty"`
	Location         *LocationInput `json:"location,omitempty" validate:"omitempty"`
	MaxAttendees     int            `json:"max_attendees" validate:"gte=0"`
	CurrentAttendees int            `json:"current_attendees" validate:"gte=0"`
	DistanceKm       *float64       `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	HostID           *int           `json:"host_id,omitempty" validate:"omitempty,gte=1"`
}

// ToEvent converts the input to the engine type.
func (e *EventInput) ToEvent() recommend.Event {
	ev := recommend.Event{
		ID:               e.ID,
		Category:         e.Category,
		ScheduledAt:      e.ScheduledAt,
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: e.CurrentAttendees,
		DistanceKm:       e.DistanceKm,
		HostID:           e.HostID,
	}
	if e.Location != nil {
		ev.Location = e.Location.ToCoordinates()
	}
	return ev
}

// ToCoordinates converts the input to the engine type.
func (l *LocationInput) ToCoordinates() *recommend.Coordinates {
	if l == nil {
		return nil
	}
	return &recommend.Coordinates{Lat: l.Lat, Lng: l.Lng}
}

// ToWeights converts a validated override. Call only after validation.
func (w *WeightsInput) ToWeights() recommend.AlgorithmWeights {
	return recommend.AlgorithmWeights{
		History:    *w.History,
		Social:     *w.Social,
		Popularity: *w.Popularity,
		Recency:    *w.Recency,
		Geographic: *w.Geographic,
		Novelty:    *w.Novelty,
		Penalty:    *w.Penalty,
	}
}

// ScoreResponse is the data payload of a successful score call. Items are in
// request order; clients sort by score themselves.
type ScoreResponse struct {
	Algorithm string                     `json:"algorithm"`
	Count     int                        `json:"count"`
	Weights   recommend.AlgorithmWeights `json:"weights"`
	Items     []recommend.ScoredEvent    `json:"items"`
}

// AlgorithmsResponse lists the resolvable algorithm names.
type AlgorithmsResponse struct {
	Default    string   `json:"default"`
	Algorithms []string `json:"algorithms"`
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status         string  `json:"status"` // healthy or degraded
	Version        string  `json:"version"`
	Database       string  `json:"database"` // driver name
	DatabaseUp     bool    `json:"database_up"`
	BreakerState   string  `json:"breaker_state"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	TracingEnabled bool    `json:"tracing_enabled"`
}
