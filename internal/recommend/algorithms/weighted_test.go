// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tomtom215/tokirank/internal/recommend"
	"github.com/tomtom215/tokirank/internal/recommend/recommendtest"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func defaultWeights() recommend.AlgorithmWeights {
	return recommend.AlgorithmWeights{
		History:    0.25,
		Social:     0.20,
		Popularity: 0.15,
		Recency:    0.15,
		Geographic: 0.15,
		Novelty:    0.10,
		Penalty:    0.5,
	}
}

func fixedClock() Option {
	return WithClock(func() time.Time { return testNow })
}

func TestWeightedEmptyBatchIssuesNoReads(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{}
	w := NewWeightedRecommendation(p, fixedClock())

	got, err := w.ScoreEvents(context.Background(), nil, recommend.ScoringContext{UserID: 1, Weights: defaultWeights()})
	if err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ScoreEvents() = %#v, want empty non-nil slice", got)
	}
	if n := p.TotalCalls(); n != 0 {
		t.Errorf("provider reads = %d, want 0", n)
	}
}

func TestWeightedColdStartScore(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{}
	w := NewWeightedRecommendation(p, fixedClock())

	events := []recommend.Event{{
		ID:               42,
		Category:         "sports",
		ScheduledAt:      ptr(testNow.Add(24 * time.Hour)),
		MaxAttendees:     10,
		CurrentAttendees: 5,
	}}

	got, err := w.ScoreEvents(context.Background(), events, recommend.ScoringContext{UserID: 1, Weights: defaultWeights()})
	if err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	// similarity 0, social 0, popularity 0.5, recency 1-24/168,
	// geographic 0.5 (no coordinates), novelty 1.
	want := 0.15*0.5 + 0.15*(1-24.0/168) + 0.15*0.5 + 0.10*1
	if !approxEqual(got[0].Score, want, epsilon) {
		t.Errorf("Score = %v, want %v", got[0].Score, want)
	}
	if got[0].Penalty != 0 {
		t.Errorf("Penalty = %v, want 0", got[0].Penalty)
	}

	wantSignals := recommend.Signals{Popularity: 0.5, Recency: 1 - 24.0/168, Geographic: 0.5, Novelty: 1}
	if !approxEqual(got[0].Signals.Recency, wantSignals.Recency, epsilon) {
		t.Errorf("Signals.Recency = %v, want %v", got[0].Signals.Recency, wantSignals.Recency)
	}
	got[0].Signals.Recency = wantSignals.Recency
	if got[0].Signals != wantSignals {
		t.Errorf("Signals = %+v, want %+v", got[0].Signals, wantSignals)
	}

	// No connections, so the dependent read is skipped.
	if _, _, _, cp := p.Calls(); cp != 0 {
		t.Errorf("connection participation reads = %d, want 0", cp)
	}
}

func TestWeightedUsesUserContext(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{
		History:       map[string]int{"coffee": 4},
		Saved:         map[string]int{"coffee": 2},
		Connections:   []int{7, 8, 9},
		Participation: map[int][]int{1: {7, 8, 9}, 2: {100}},
	}
	w := NewWeightedRecommendation(p, fixedClock(), WithRerankers())

	events := []recommend.Event{
		{ID: 1, Category: "coffee", HostID: ptr(7), MaxAttendees: 10},
		{ID: 2, Category: "hiking", MaxAttendees: 10},
	}
	weights := recommend.AlgorithmWeights{History: 1, Social: 1, Novelty: 1}

	got, err := w.ScoreEvents(context.Background(), events, recommend.ScoringContext{UserID: 1, Weights: weights})
	if err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}

	coffee := got[0].Signals
	if !approxEqual(coffee.Similarity, 0.5, epsilon) {
		t.Errorf("coffee similarity = %v, want 0.5", coffee.Similarity)
	}
	if !approxEqual(coffee.Social, 1, epsilon) {
		t.Errorf("coffee social = %v, want 1", coffee.Social)
	}
	if coffee.Novelty != 0.3 {
		t.Errorf("coffee novelty = %v, want 0.3", coffee.Novelty)
	}

	hiking := got[1].Signals
	if hiking.Similarity != 0 || hiking.Social != 0 || hiking.Novelty != 1 {
		t.Errorf("hiking signals = %+v, want similarity 0, social 0, novelty 1", hiking)
	}

	users, evs := p.LastParticipationArgs()
	if fmt.Sprint(users) != "[7 8 9]" || fmt.Sprint(evs) != "[1 2]" {
		t.Errorf("participation args = %v %v, want [7 8 9] [1 2]", users, evs)
	}
}

func TestWeightedPreservesOrderAndIdentity(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{}
	w := NewWeightedRecommendation(p, fixedClock())

	events := make([]recommend.Event, 0, 20)
	for i := 0; i < 20; i++ {
		events = append(events, recommend.Event{ID: 1000 - i, Category: []string{"a", "b", ""}[i%3], MaxAttendees: 20, CurrentAttendees: i})
	}

	got, err := w.ScoreEvents(context.Background(), events, recommend.ScoringContext{UserID: 5, Weights: defaultWeights()})
	if err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("len = %d, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i].Event.ID != events[i].ID {
			t.Errorf("position %d: id = %d, want %d", i, got[i].Event.ID, events[i].ID)
		}
	}
}

func TestWeightedAppliesDiversityPenalty(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{}
	w := NewWeightedRecommendation(p, fixedClock())

	events := make([]recommend.Event, 5)
	for i := range events {
		events[i] = recommend.Event{ID: i + 1, Category: "sports", MaxAttendees: 10}
	}

	got, err := w.ScoreEvents(context.Background(), events, recommend.ScoringContext{UserID: 1, Weights: defaultWeights()})
	if err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}

	wantPenalty := []float64{0, 0, 0, 0.05, 0.1}
	for i, want := range wantPenalty {
		if !approxEqual(got[i].Penalty, want, epsilon) {
			t.Errorf("event %d penalty = %v, want %v", i+1, got[i].Penalty, want)
		}
		base := got[i].Signals.Weighted(defaultWeights())
		if !approxEqual(got[i].Score, base-want, epsilon) {
			t.Errorf("event %d score = %v, want %v", i+1, got[i].Score, base-want)
		}
	}
}

func TestWeightedPropagatesReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name     string
		provider *recommendtest.Provider
	}{
		{"history", &recommendtest.Provider{HistoryErr: boom}},
		{"saved", &recommendtest.Provider{SavedErr: boom}},
		{"connections", &recommendtest.Provider{ConnectionsErr: boom}},
		{"participation", &recommendtest.Provider{Connections: []int{2}, ParticipationErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewWeightedRecommendation(tt.provider, fixedClock())
			got, err := w.ScoreEvents(context.Background(), []recommend.Event{{ID: 1}}, recommend.ScoringContext{UserID: 1})
			if !errors.Is(err, boom) {
				t.Fatalf("ScoreEvents() error = %v, want wrapping %v", err, boom)
			}
			if got != nil {
				t.Errorf("ScoreEvents() = %v, want nil on error", got)
			}
		})
	}
}

func TestWeightedNilProvider(t *testing.T) {
	t.Parallel()

	w := NewWeightedRecommendation(nil)
	_, err := w.ScoreEvents(context.Background(), []recommend.Event{{ID: 1}}, recommend.ScoringContext{})
	if !errors.Is(err, recommend.ErrNoProvider) {
		t.Errorf("ScoreEvents() error = %v, want ErrNoProvider", err)
	}
}

func TestWeightedParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	p := &recommendtest.Provider{
		History:       map[string]int{"c1": 3},
		Connections:   []int{2, 3},
		Participation: map[int][]int{10: {2}, 20: {2, 3}},
	}
	loc := &recommend.Coordinates{Lat: 52.52, Lng: 13.405}

	events := make([]recommend.Event, 600)
	for i := range events {
		events[i] = recommend.Event{
			ID:               i,
			Category:         fmt.Sprintf("c%d", i%7),
			ScheduledAt:      ptr(testNow.Add(time.Duration(i) * time.Hour)),
			Location:         &recommend.Coordinates{Lat: 52.52 + float64(i)*0.001, Lng: 13.405},
			MaxAttendees:     50,
			CurrentAttendees: i % 50,
		}
	}
	sc := recommend.ScoringContext{UserID: 1, Location: loc, Weights: defaultWeights()}

	seq := NewWeightedRecommendation(p, fixedClock(), WithParallelThreshold(0))
	par := NewWeightedRecommendation(p, fixedClock(), WithParallelThreshold(1))

	a, err := seq.ScoreEvents(context.Background(), events, sc)
	if err != nil {
		t.Fatalf("sequential error = %v", err)
	}
	b, err := par.ScoreEvents(context.Background(), events, sc)
	if err != nil {
		t.Fatalf("parallel error = %v", err)
	}
	for i := range a {
		if a[i].Event.ID != b[i].Event.ID || a[i].Score != b[i].Score || a[i].Penalty != b[i].Penalty {
			t.Fatalf("position %d differs: sequential %+v, parallel %+v", i, a[i], b[i])
		}
	}
}

func TestWeightedRecordsSpan(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ok := NewWeightedRecommendation(&recommendtest.Provider{}, fixedClock(), WithTracerProvider(tp))
	if _, err := ok.ScoreEvents(context.Background(), []recommend.Event{{ID: 1}}, recommend.ScoringContext{UserID: 3}); err != nil {
		t.Fatalf("ScoreEvents() error = %v", err)
	}

	failing := NewWeightedRecommendation(&recommendtest.Provider{SavedErr: errors.New("db down")}, fixedClock(), WithTracerProvider(tp))
	if _, err := failing.ScoreEvents(context.Background(), []recommend.Event{{ID: 1}}, recommend.ScoringContext{UserID: 3}); err == nil {
		t.Fatal("ScoreEvents() error = nil, want error")
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	for _, s := range spans {
		if s.Name() != "WeightedRecommendation.ScoreEvents" {
			t.Errorf("span name = %q", s.Name())
		}
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("successful call recorded an error status")
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("failed call status = %v, want Error", spans[1].Status().Code)
	}
}
