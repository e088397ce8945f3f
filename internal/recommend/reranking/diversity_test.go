// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package reranking

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/tokirank/internal/recommend"
)

const eps = 1e-9

func scored(categories ...string) []recommend.ScoredEvent {
	items := make([]recommend.ScoredEvent, len(categories))
	for i, c := range categories {
		items[i] = recommend.ScoredEvent{
			Event: recommend.Event{ID: i + 1, Category: c},
			Score: 1.0,
		}
	}
	return items
}

func TestDiversityFiveOfOneCategory(t *testing.T) {
	t.Parallel()

	d := NewDiversity(DefaultDiversityThreshold, DefaultDiversityStep)
	items := d.Rerank(context.Background(), scored("sports", "sports", "sports", "sports", "sports"),
		recommend.AlgorithmWeights{Penalty: 1})

	want := []float64{0, 0, 0, 0.1, 0.2}
	for i, w := range want {
		if math.Abs(items[i].Penalty-w) > eps {
			t.Errorf("event %d penalty = %v, want %v", i+1, items[i].Penalty, w)
		}
		if math.Abs(items[i].Score-(1-w)) > eps {
			t.Errorf("event %d score = %v, want %v", i+1, items[i].Score, 1-w)
		}
	}
}

func TestDiversityOtherCategoriesUnaffected(t *testing.T) {
	t.Parallel()

	d := NewDiversity(3, 0.1)
	items := d.Rerank(context.Background(),
		scored("sports", "music", "sports", "sports", "coffee", "sports", "music", "sports"),
		recommend.AlgorithmWeights{Penalty: 1})

	want := map[int]float64{6: 0.1, 8: 0.2}
	for _, it := range items {
		if math.Abs(it.Penalty-want[it.Event.ID]) > eps {
			t.Errorf("event %d (%s) penalty = %v, want %v", it.Event.ID, it.Event.Category, it.Penalty, want[it.Event.ID])
		}
	}
}

func TestDiversityPreservesOrderAndLength(t *testing.T) {
	t.Parallel()

	in := scored("a", "a", "a", "a", "b", "", "", "", "")
	d := NewDiversity(3, 0.1)
	out := d.Rerank(context.Background(), in, recommend.AlgorithmWeights{Penalty: 2})

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range out {
		if out[i].Event.ID != i+1 {
			t.Fatalf("position %d holds event %d", i, out[i].Event.ID)
		}
	}
	// Empty categories share the "unknown" tally: 4th unknown is penalized.
	if math.Abs(out[8].Penalty-0.2) > eps {
		t.Errorf("4th unknown penalty = %v, want 0.2", out[8].Penalty)
	}
}

func TestDiversityPenaltyWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weight  float64
		wantLst float64
	}{
		{"zero weight disables", 0, 0},
		{"half weight", 0.5, 0.1},
		{"double weight", 2, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDiversity(3, 0.1)
			out := d.Rerank(context.Background(), scored("x", "x", "x", "x", "x"),
				recommend.AlgorithmWeights{Penalty: tt.weight})
			if math.Abs(out[4].Penalty-tt.wantLst) > eps {
				t.Errorf("5th penalty = %v, want %v", out[4].Penalty, tt.wantLst)
			}
		})
	}
}

func TestDiversityCustomThreshold(t *testing.T) {
	t.Parallel()

	d := NewDiversity(1, 0.25)
	out := d.Rerank(context.Background(), scored("x", "x", "x"), recommend.AlgorithmWeights{Penalty: 1})

	want := []float64{0, 0.25, 0.5}
	for i, w := range want {
		if math.Abs(out[i].Penalty-w) > eps {
			t.Errorf("event %d penalty = %v, want %v", i+1, out[i].Penalty, w)
		}
	}
}

func TestNewDiversityDefaults(t *testing.T) {
	t.Parallel()

	d := NewDiversity(-1, -1)
	if d.threshold != DefaultDiversityThreshold || d.step != DefaultDiversityStep {
		t.Errorf("got %d/%v, want defaults", d.threshold, d.step)
	}
	if d.Name() != "diversity" {
		t.Errorf("Name() = %q", d.Name())
	}
}

func TestDiversityEmpty(t *testing.T) {
	t.Parallel()

	out := NewDiversity(3, 0.1).Rerank(context.Background(), nil, recommend.AlgorithmWeights{Penalty: 1})
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
}
