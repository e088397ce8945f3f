// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// LoadUserContext gathers the relationship facts for userID and the batch
// eventIDs.
//
// Participation history, saved categories and the connection set are read
// concurrently. Connection participation depends on the connection set and
// is read afterwards, and only when both the batch and the set are non-empty.
// The first failing read cancels the others and is returned; no partial
// context is ever produced.
func LoadUserContext(ctx context.Context, p ContextProvider, userID int, eventIDs []int) (*UserContext, error) {
	var (
		history     map[string]int
		saved       map[string]int
		connections []int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if history, err = p.CategoryParticipation(gctx, userID); err != nil {
			return fmt.Errorf("load participation history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if saved, err = p.SavedCategoryCounts(gctx, userID); err != nil {
			return fmt.Errorf("load saved categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if connections, err = p.AcceptedConnections(gctx, userID); err != nil {
			return fmt.Errorf("load connections: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc := NewUserContext(history, saved, connections)

	batch := uniqueIDs(eventIDs)
	if len(batch) == 0 || len(uc.Connections) == 0 {
		return uc, nil
	}

	cp, err := p.ConnectionParticipation(ctx, uc.ConnectionIDs(), batch)
	if err != nil {
		return nil, fmt.Errorf("load connection participation: %w", err)
	}
	if cp != nil {
		uc.ConnectionParticipation = cp
	}
	return uc, nil
}

// uniqueIDs drops duplicates, keeping first-seen order.
func uniqueIDs(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
