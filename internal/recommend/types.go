// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package recommend

import (
	"fmt"
	"sort"
	"time"
)

// UnknownCategory stands in for an event that carries no category.
const UnknownCategory = "unknown"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is a candidate event. It is read-only once handed to a Strategy.
type Event struct {
	// ID is the event identifier.
	ID int `json:"id"`

	// Category is a free-form tag such as "sports" or "coffee".
	// Empty is treated as UnknownCategory.
	Category string `json:"category"`

	// ScheduledAt is the start time, if the event has one.
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`

	// Location is where the event takes place, if known.
	Location *Coordinates `json:"location,omitempty"`

	// MaxAttendees is the capacity. Values below 1 are treated as 1.
	MaxAttendees int `json:"max_attendees"`

	// CurrentAttendees is the current occupancy.
	CurrentAttendees int `json:"current_attendees"`

	// DistanceKm is a precomputed distance from the requester. When set it
	// is used instead of computing one from coordinates.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	// HostID is the user who created the event.
	HostID *int `json:"host_id,omitempty"`
}

// CategoryKey returns the category used for history lookups and the
// diversity tally.
func (e *Event) CategoryKey() string {
	if e.Category == "" {
		return UnknownCategory
	}
	return e.Category
}

// AlgorithmWeights are the per-signal coefficients plus the diversity penalty
// scale. They are applied as-is; nothing normalizes them.
type AlgorithmWeights struct {
	History    float64 `json:"history"`
	Social     float64 `json:"social"`
	Popularity float64 `json:"popularity"`
	Recency    float64 `json:"recency"`
	Geographic float64 `json:"geographic"`
	Novelty    float64 `json:"novelty"`
	Penalty    float64 `json:"penalty"`
}

// Validate rejects negative coefficients.
func (w AlgorithmWeights) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"history", w.History},
		{"social", w.Social},
		{"popularity", w.Popularity},
		{"recency", w.Recency},
		{"geographic", w.Geographic},
		{"novelty", w.Novelty},
		{"penalty", w.Penalty},
	} {
		if f.v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %f", f.name, f.v)
		}
	}
	return nil
}

// ScoringContext is the per-request unit of work.
type ScoringContext struct {
	// UserID is the requester. It is not validated.
	UserID int

	// Location is the requester's position, if known.
	Location *Coordinates

	Weights AlgorithmWeights
}

// UserContext holds the relationship facts for one requester and one
// candidate batch. It is built per call and never shared.
type UserContext struct {
	// CategoryHistory counts past participations per category.
	CategoryHistory map[string]int

	// SavedCategories counts saved events per category.
	SavedCategories map[string]int

	// Connections is the set of users with an accepted connection.
	Connections map[int]struct{}

	// ConnectionParticipation counts, per batch event, the connections with
	// an approved participation.
	ConnectionParticipation map[int]int
}

// NewUserContext builds a UserContext. Nil maps are replaced with empty ones.
func NewUserContext(history, saved map[string]int, connections []int) *UserContext {
	if history == nil {
		history = map[string]int{}
	}
	if saved == nil {
		saved = map[string]int{}
	}
	set := make(map[int]struct{}, len(connections))
	for _, id := range connections {
		set[id] = struct{}{}
	}
	return &UserContext{
		CategoryHistory:         history,
		SavedCategories:         saved,
		Connections:             set,
		ConnectionParticipation: map[int]int{},
	}
}

// HasParticipatedIn reports whether the requester ever joined an event of
// the category.
func (u *UserContext) HasParticipatedIn(category string) bool {
	return u.CategoryHistory[category] > 0
}

// ParticipatedCategories returns the categories with history, sorted.
func (u *UserContext) ParticipatedCategories() []string {
	out := make([]string, 0, len(u.CategoryHistory))
	for c, n := range u.CategoryHistory {
		if n > 0 {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// IsConnection reports whether userID is an accepted connection.
func (u *UserContext) IsConnection(userID int) bool {
	_, ok := u.Connections[userID]
	return ok
}

// ConnectionIDs returns the connection set as a sorted slice.
func (u *UserContext) ConnectionIDs() []int {
	out := make([]int, 0, len(u.Connections))
	for id := range u.Connections {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Signals is the per-signal breakdown behind a score. Every value is in [0,1].
type Signals struct {
	Similarity float64 `json:"similarity"`
	Social     float64 `json:"social"`
	Popularity float64 `json:"popularity"`
	Recency    float64 `json:"recency"`
	Geographic float64 `json:"geographic"`
	Novelty    float64 `json:"novelty"`
}

// Weighted returns the weighted sum of the signals.
func (s Signals) Weighted(w AlgorithmWeights) float64 {
	return w.History*s.Similarity +
		w.Social*s.Social +
		w.Popularity*s.Popularity +
		w.Recency*s.Recency +
		w.Geographic*s.Geographic +
		w.Novelty*s.Novelty
}

// ScoredEvent is an Event with its score attached.
type ScoredEvent struct {
	Event Event `json:"event"`

	// Score is the weighted sum minus any diversity penalty.
	Score float64 `json:"score"`

	// Penalty is the amount the diversity pass subtracted from Score.
	Penalty float64 `json:"penalty"`

	Signals Signals `json:"signals"`
}
