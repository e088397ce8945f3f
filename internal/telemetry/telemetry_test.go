// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/tokirank/internal/config"
)

func TestSetupDisabled(t *testing.T) {
	t.Parallel()

	p, err := Setup(context.Background(), config.TelemetryConfig{TracingEnabled: false})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if p.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if p.TracerProvider() == nil {
		t.Error("TracerProvider() = nil, want no-op provider")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestSetupExportsSpans(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := Setup(context.Background(),
		config.TelemetryConfig{TracingEnabled: true, ServiceName: "tokirank-test", SampleRatio: 1},
		WithWriter(&buf), WithoutGlobal())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !p.Enabled() {
		t.Fatal("Enabled() = false, want true")
	}

	_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "WeightedRecommendation.ScoreEvents")
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WeightedRecommendation.ScoreEvents") {
		t.Errorf("exported output missing span name: %s", out)
	}
	if !strings.Contains(out, "tokirank-test") {
		t.Errorf("exported output missing service name: %s", out)
	}

	// Second shutdown is a no-op.
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestSetupZeroSampleRatioDropsSpans(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := Setup(context.Background(),
		config.TelemetryConfig{TracingEnabled: true, SampleRatio: 0},
		WithWriter(&buf), WithoutGlobal())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "dropped")
	if span.SpanContext().IsSampled() {
		t.Error("span sampled with ratio 0")
	}
	span.End()
	_ = p.Shutdown(context.Background())

	if buf.Len() != 0 {
		t.Errorf("exported output = %q, want none", buf.String())
	}
}

func TestNilProvider(t *testing.T) {
	t.Parallel()

	var p *Provider
	if p.Enabled() {
		t.Error("nil Enabled() = true")
	}
	if p.TracerProvider() == nil {
		t.Error("nil TracerProvider() = nil")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("nil Shutdown() error = %v", err)
	}
}
