// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/tokirank/internal/recommend"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func ptr[T any](v T) *T { return &v }

func TestDistanceDecay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		km   float64
		want float64
	}{
		{"walking distance", 0.5, 1.0},
		{"exactly 1km", 1, 1.0},
		{"5km", 5, 0.8},
		{"exactly 10km", 10, 0.55},
		{"30km", 30, 0.35},
		{"exactly 50km", 50, 0.15},
		{"just over 50km", 50.01, 0.1},
		{"100km", 100, 0.1},
		{"zero", 0, 1.0},
		{"NaN", math.NaN(), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DistanceDecay(tt.km); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("DistanceDecay(%v) = %v, want %v", tt.km, got, tt.want)
			}
		})
	}
}

func TestGeographic(t *testing.T) {
	t.Parallel()

	nyc := &recommend.Coordinates{Lat: 40.7128, Lng: -74.0060}
	nearby := &recommend.Coordinates{Lat: 40.7138, Lng: -74.0060}

	tests := []struct {
		name        string
		requester   *recommend.Coordinates
		event       *recommend.Coordinates
		precomputed *float64
		want        float64
	}{
		{"no requester location", nil, nyc, nil, 0.5},
		{"no event location", nyc, nil, nil, 0.5},
		{"missing both ignores precomputed", nil, nil, ptr(0.5), 0.5},
		{"precomputed wins over coordinates", nyc, nearby, ptr(30.0), 0.35},
		{"haversine when not precomputed", nyc, nearby, nil, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Geographic(tt.requester, tt.event, tt.precomputed)
			if !approxEqual(got, tt.want, epsilon) {
				t.Errorf("Geographic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecency(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   *time.Time
		want float64
	}{
		{"unscheduled", nil, 0.3},
		{"already started", ptr(now.Add(-time.Minute)), 0},
		{"starting now", ptr(now), 1},
		{"in 84 hours", ptr(now.Add(84 * time.Hour)), 0.5},
		{"exactly one week", ptr(now.Add(168 * time.Hour)), 0},
		{"beyond one week", ptr(now.Add(400 * time.Hour)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Recency(tt.at, now); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("Recency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPopularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		current, capacity int
		want              float64
	}{
		{"empty", 0, 10, 0},
		{"half full", 5, 10, 0.5},
		{"at capacity", 10, 10, 1},
		{"overbooked clamps", 15, 10, 1},
		{"zero capacity treated as one", 1, 0, 1},
		{"negative current clamps", -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Popularity(tt.current, tt.capacity); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("Popularity(%d, %d) = %v, want %v", tt.current, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		history, saved int
		want           float64
	}{
		{0, 0, 0},
		{2, 0, 0.2},
		{2, 2, 0.3},
		{0, 4, 0.2},
		{10, 0, 1},
		{20, 20, 1},
	}

	for _, tt := range tests {
		if got := Similarity(tt.history, tt.saved); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("Similarity(%d, %d) = %v, want %v", tt.history, tt.saved, got, tt.want)
		}
	}
}

func TestSocial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cp   int
		host bool
		want float64
	}{
		{"nobody", 0, false, 0},
		{"host only", 0, true, 0.3},
		{"one connection", 1, false, 0.2 + 0.5*0.4/3},
		{"three connections", 3, false, 0.8},
		{"three connections and host", 3, true, 1},
		{"saturated", 10, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Social(tt.cp, tt.host); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("Social(%d, %v) = %v, want %v", tt.cp, tt.host, got, tt.want)
			}
		})
	}
}

func TestNoveltyFollowsHistory(t *testing.T) {
	t.Parallel()

	fresh := recommend.NewUserContext(nil, nil, nil)
	if got := Novelty(fresh.HasParticipatedIn("coffee")); got != 1.0 {
		t.Errorf("novelty without history = %v, want 1.0", got)
	}

	regular := recommend.NewUserContext(map[string]int{"coffee": 2}, nil, nil)
	if got := Novelty(regular.HasParticipatedIn("coffee")); got != 0.3 {
		t.Errorf("novelty with history = %v, want 0.3", got)
	}

	// Saved events do not count as participation.
	saver := recommend.NewUserContext(nil, map[string]int{"coffee": 5}, nil)
	if got := Novelty(saver.HasParticipatedIn("coffee")); got != 1.0 {
		t.Errorf("novelty with only saved events = %v, want 1.0", got)
	}
}

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, tol              float64
	}{
		{"same point", 51.5074, -0.1278, 51.5074, -0.1278, 0, epsilon},
		{"London to Paris", 51.5074, -0.1278, 48.8566, 2.3522, 344, 5},
		{"New York to Los Angeles", 40.7128, -74.0060, 34.0522, -118.2437, 3935, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if !approxEqual(got, tt.want, tt.tol) {
				t.Errorf("HaversineKm() = %.2f, want %.2f ± %.2f", got, tt.want, tt.tol)
			}
		})
	}
}

func TestComputeSignalsBounded(t *testing.T) {
	t.Parallel()

	now := time.Now()
	uc := recommend.NewUserContext(
		map[string]int{"sports": 50},
		map[string]int{"sports": 50},
		[]int{7},
	)
	uc.ConnectionParticipation[1] = 99
	sc := &recommend.ScoringContext{Location: &recommend.Coordinates{Lat: 10, Lng: 10}}

	events := []recommend.Event{
		{ID: 1, Category: "sports", MaxAttendees: 1, CurrentAttendees: 500, HostID: ptr(7), ScheduledAt: ptr(now)},
		{ID: 2, MaxAttendees: -4, CurrentAttendees: -1, ScheduledAt: ptr(now.Add(-time.Hour))},
		{ID: 3, Category: "music", Location: &recommend.Coordinates{Lat: -10, Lng: -170}, DistanceKm: ptr(math.NaN())},
	}

	for i := range events {
		s := computeSignals(&events[i], sc, uc, now)
		for name, v := range map[string]float64{
			"similarity": s.Similarity,
			"social":     s.Social,
			"popularity": s.Popularity,
			"recency":    s.Recency,
			"geographic": s.Geographic,
			"novelty":    s.Novelty,
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("event %d: %s = %v, want within [0,1]", events[i].ID, name, v)
			}
		}
	}
}
