// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is returned by Registry.Get for a name with neither
	// a cached instance nor a factory.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrNoProvider is returned by factories that need a ContextProvider
	// when none is available.
	ErrNoProvider = errors.New("no context provider")
)

// ConfigError reports a configuration mistake on the caller's side. It is
// not retryable without changing the request.
type ConfigError struct {
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("algorithm %q: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
