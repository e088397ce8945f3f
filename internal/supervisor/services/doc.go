// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package services adapts Tokirank components to suture.Service.
//
// HTTPServerService turns http.Server's blocking ListenAndServe into a
// context-aware Serve with graceful shutdown. StoreMonitor probes the
// relational store on an interval and publishes its health.
//
// Every service implements fmt.Stringer so suture logs name it.
package services
