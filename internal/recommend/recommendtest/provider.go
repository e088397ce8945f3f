// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package recommendtest provides an in-memory recommend.ContextProvider for
// tests of strategies and their callers.
package recommendtest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// Provider is a fixed-data ContextProvider that counts calls.
//
// Set the *Err fields to make the matching read fail.
type Provider struct {
	History     map[string]int
	Saved       map[string]int
	Connections []int

	// Participation maps event id to the connection user ids with an
	// approved participation in it.
	Participation map[int][]int

	HistoryErr       error
	SavedErr         error
	ConnectionsErr   error
	ParticipationErr error

	historyCalls       atomic.Int32
	savedCalls         atomic.Int32
	connectionsCalls   atomic.Int32
	participationCalls atomic.Int32

	mu         sync.Mutex
	lastUsers  []int
	lastEvents []int
}

// CategoryParticipation implements recommend.ContextProvider.
func (p *Provider) CategoryParticipation(ctx context.Context, _ int) (map[string]int, error) {
	p.historyCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.HistoryErr != nil {
		return nil, p.HistoryErr
	}
	return copyCounts(p.History), nil
}

// SavedCategoryCounts implements recommend.ContextProvider.
func (p *Provider) SavedCategoryCounts(ctx context.Context, _ int) (map[string]int, error) {
	p.savedCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.SavedErr != nil {
		return nil, p.SavedErr
	}
	return copyCounts(p.Saved), nil
}

// AcceptedConnections implements recommend.ContextProvider.
func (p *Provider) AcceptedConnections(ctx context.Context, _ int) ([]int, error) {
	p.connectionsCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.ConnectionsErr != nil {
		return nil, p.ConnectionsErr
	}
	return append([]int(nil), p.Connections...), nil
}

// ConnectionParticipation implements recommend.ContextProvider.
func (p *Provider) ConnectionParticipation(ctx context.Context, userIDs, eventIDs []int) (map[int]int, error) {
	p.participationCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.lastUsers = sortedCopy(userIDs)
	p.lastEvents = sortedCopy(eventIDs)
	p.mu.Unlock()
	if p.ParticipationErr != nil {
		return nil, p.ParticipationErr
	}

	users := make(map[int]struct{}, len(userIDs))
	for _, id := range userIDs {
		users[id] = struct{}{}
	}
	out := make(map[int]int)
	for _, eventID := range eventIDs {
		n := 0
		for _, u := range p.Participation[eventID] {
			if _, ok := users[u]; ok {
				n++
			}
		}
		if n > 0 {
			out[eventID] = n
		}
	}
	return out, nil
}

// Calls returns the number of calls to each read, in declaration order.
func (p *Provider) Calls() (history, saved, connections, participation int) {
	return int(p.historyCalls.Load()), int(p.savedCalls.Load()),
		int(p.connectionsCalls.Load()), int(p.participationCalls.Load())
}

// LastParticipationArgs returns the sorted arguments of the most recent
// ConnectionParticipation call.
func (p *Provider) LastParticipationArgs() (userIDs, eventIDs []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUsers, p.lastEvents
}

// TotalCalls returns the number of reads issued.
func (p *Provider) TotalCalls() int {
	h, s, c, cp := p.Calls()
	return h + s + c + cp
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedCopy(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}
