// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package models holds the HTTP request and response types of the scoring
// API. Engine types live in internal/recommend; the Input types here carry
// validation tags and convert into them.
package models
