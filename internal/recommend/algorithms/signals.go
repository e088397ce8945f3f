// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"math"
	"time"

	"github.com/tomtom215/tokirank/internal/recommend"
)

// Neutral values for signals whose input is missing.
const (
	neutralRecency    = 0.3
	neutralGeographic = 0.5
)

// Similarity scores affinity from the requester's history in the event's
// category. Saved events count at half weight.
//
//	min((history + 0.5*saved) / 10, 1)
func Similarity(history, saved int) float64 {
	return clamp01((float64(history) + 0.5*float64(saved)) / 10)
}

// Social combines attendance by connections with host affinity.
//
//	base  = min(cp/5, 1)
//	boost = 0.6*hostIsConnection + 0.4*min(cp/3, 1)
//	min(1, base + 0.5*boost)
func Social(connectionParticipation int, hostIsConnection bool) float64 {
	cp := float64(connectionParticipation)
	base := clamp01(cp / 5)

	boost := 0.4 * clamp01(cp/3)
	if hostIsConnection {
		boost += 0.6
	}
	return clamp01(base + 0.5*boost)
}

// Popularity is the fill ratio of the event. Capacity below 1 counts as 1.
func Popularity(current, capacity int) float64 {
	if capacity < 1 {
		capacity = 1
	}
	return clamp01(float64(current) / float64(capacity))
}

// Recency ramps linearly from 1 at start time down to 0 one week out.
// Unscheduled events get a neutral 0.3; events that already started get 0.
func Recency(scheduledAt *time.Time, now time.Time) float64 {
	if scheduledAt == nil {
		return neutralRecency
	}
	if scheduledAt.Before(now) {
		return 0
	}
	hours := scheduledAt.Sub(now).Hours()
	return clamp01(1 - hours/(24*7))
}

// Geographic scores proximity. Missing coordinates on either side give a
// neutral 0.5. A precomputed distance is preferred over haversine.
func Geographic(requester, event *recommend.Coordinates, precomputedKm *float64) float64 {
	if requester == nil || event == nil {
		return neutralGeographic
	}
	if precomputedKm != nil {
		return DistanceDecay(*precomputedKm)
	}
	return DistanceDecay(HaversineKm(requester.Lat, requester.Lng, event.Lat, event.Lng))
}

// DistanceDecay maps a distance in km to a proximity score:
//
//	d <= 1   1.0
//	d <= 10  max(0.5, 1 - (d-1)*0.05)
//	d <= 50  max(0.1, 0.55 - (d-10)*0.01)
//	d > 50   0.1
func DistanceDecay(km float64) float64 {
	switch {
	case math.IsNaN(km):
		return neutralGeographic
	case km <= 1:
		return 1.0
	case km <= 10:
		return math.Max(0.5, 1-(km-1)*0.05)
	case km <= 50:
		return math.Max(0.1, 0.55-(km-10)*0.01)
	default:
		return 0.1
	}
}

// Novelty rewards categories the requester has never joined.
func Novelty(participated bool) float64 {
	if participated {
		return 0.3
	}
	return 1.0
}

// computeSignals evaluates all six signals for one event.
func computeSignals(e *recommend.Event, sc *recommend.ScoringContext, uc *recommend.UserContext, now time.Time) recommend.Signals {
	cat := e.CategoryKey()
	cp := uc.ConnectionParticipation[e.ID]
	hostIsConn := e.HostID != nil && uc.IsConnection(*e.HostID)

	return recommend.Signals{
		Similarity: Similarity(uc.CategoryHistory[cat], uc.SavedCategories[cat]),
		Social:     Social(cp, hostIsConn),
		Popularity: Popularity(e.CurrentAttendees, e.MaxAttendees),
		Recency:    Recency(e.ScheduledAt, now),
		Geographic: Geographic(sc.Location, e.Location, e.DistanceKm),
		Novelty:    Novelty(uc.HasParticipatedIn(cat)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
