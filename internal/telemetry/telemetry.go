// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package telemetry configures OpenTelemetry tracing.
//
// When tracing is enabled, Setup installs a global sdk TracerProvider that
// exports spans through the stdout exporter, so the spans opened by the
// scoring strategies and the store show up in the service output. When it
// is disabled, the global no-op provider stays in place and spans cost
// nothing.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/logging"
)

const defaultServiceName = "tokirank"

// Provider owns the tracer provider installed by Setup.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
	shutdownOnce   sync.Once
}

// Option configures Setup.
type Option func(*setupOptions)

type setupOptions struct {
	writer io.Writer
	global bool
}

// WithWriter sends exported spans to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *setupOptions) {
		o.writer = w
	}
}

// WithoutGlobal skips installing the provider as the otel global.
func WithoutGlobal() Option {
	return func(o *setupOptions) {
		o.global = false
	}
}

// Setup builds the tracer provider described by cfg.
func Setup(ctx context.Context, cfg config.TelemetryConfig, opts ...Option) (*Provider, error) {
	if !cfg.TracingEnabled {
		return &Provider{}, nil
	}

	o := setupOptions{writer: os.Stdout, global: true}
	for _, opt := range opts {
		opt(&o)
	}

	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = defaultServiceName
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", name)),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
	if err != nil {
		return nil, fmt.Errorf("init stdout trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp, sdktrace.WithMaxExportBatchSize(64)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	if o.global {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		))
	}

	logging.Info().
		Str("service", name).
		Float64("sample_ratio", cfg.SampleRatio).
		Msg("Tracing enabled")

	return &Provider{tracerProvider: tp}, nil
}

// TracerProvider returns the configured provider, or a no-op one when
// tracing is disabled.
func (p *Provider) TracerProvider() trace.TracerProvider {
	if p == nil || p.tracerProvider == nil {
		return noop.NewTracerProvider()
	}
	return p.tracerProvider
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.tracerProvider != nil
}

// Shutdown flushes pending spans and stops the provider. Only the first
// call does any work.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var err error
	p.shutdownOnce.Do(func() {
		if p.tracerProvider == nil {
			return
		}
		if shutdownErr := p.tracerProvider.Shutdown(ctx); shutdownErr != nil {
			err = errors.Join(err, shutdownErr)
		}
	})
	return err
}
