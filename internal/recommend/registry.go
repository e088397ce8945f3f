// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package recommend

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tokirank/internal/metrics"
)

// Registry resolves algorithm names to Strategy instances. Instances are
// built lazily by a registered Factory on first Get and cached after that.
//
// A Registry is created once at startup and passed to handlers; tests create
// their own.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]Strategy

	defaultProvider ContextProvider
	logger          zerolog.Logger
}

// NewRegistry creates an empty registry. defaultProvider is bound to
// strategies resolved without an explicit provider.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRegistry(defaultProvider ContextProvider, logger zerolog.Logger) *Registry {
	return &Registry{
		factories:       make(map[string]Factory),
		instances:       make(map[string]Strategy),
		defaultProvider: defaultProvider,
		logger:          logger.With().Str("component", "recommend_registry").Logger(),
	}
}

// RegisterFactory makes name resolvable. Replacing a factory does not evict
// an already cached instance.
func (r *Registry) RegisterFactory(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns the cached Strategy for name, building and caching it on first
// use. provider overrides the default provider for that construction only;
// once cached, the same instance is returned regardless of provider.
//
// Unknown names return a *ConfigError wrapping ErrUnknownAlgorithm.
func (r *Registry) Get(name string, provider ContextProvider) (Strategy, error) {
	r.mu.RLock()
	s, ok := r.instances[name]
	f, known := r.factories[name]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	if !known {
		return nil, &ConfigError{Name: name, Err: ErrUnknownAlgorithm}
	}

	if provider == nil {
		provider = r.defaultProvider
	}

	// Built outside the lock; a concurrent Get may build a second copy, and
	// whichever is stored first is kept.
	built, err := f(provider)
	if err != nil {
		return nil, &ConfigError{Name: name, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.instances[name]; ok {
		return existing, nil
	}
	r.instances[name] = built
	metrics.RecordStrategyConstruction(name)
	r.logger.Debug().Str("algorithm", name).Msg("Strategy constructed")
	return built, nil
}

// Register installs s under name, replacing any cached instance.
// It is used by tests and to inject pre-built variants.
func (r *Registry) Register(name string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[name] = s
}

// Clear drops every cached instance. Factories are kept, so the next Get
// builds a fresh instance.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]Strategy)
}

// Names returns every resolvable name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.factories)+len(r.instances))
	for n := range r.factories {
		seen[n] = struct{}{}
	}
	for n := range r.instances {
		seen[n] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
