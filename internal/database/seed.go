// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/tokirank/internal/logging"
)

// EventRow is a row of the events table.
type EventRow struct {
	ID       int
	Category string
	HostID   *int
}

// ParticipantRow is a row of the event_participants table.
type ParticipantRow struct {
	EventID int
	UserID  int
	Status  string
}

// SavedRow is a row of the saved_events table.
type SavedRow struct {
	UserID  int
	EventID int
}

// ConnectionRow is a row of the connections table.
type ConnectionRow struct {
	RequesterID int
	AddresseeID int
	Status      string
}

// Fixture is a set of rows loaded in one transaction.
type Fixture struct {
	Events       []EventRow
	Participants []ParticipantRow
	Saved        []SavedRow
	Connections  []ConnectionRow
}

// LoadFixture inserts every row of f in a single transaction.
func (db *DB) LoadFixture(ctx context.Context, f Fixture) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixture transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exec := func(q string, args ...interface{}) error {
		_, err := tx.ExecContext(ctx, db.rebind(q), args...)
		return err
	}

	for _, e := range f.Events {
		var host interface{}
		if e.HostID != nil {
			host = *e.HostID
		}
		var category interface{}
		if e.Category != "" {
			category = e.Category
		}
		if err = exec(`INSERT INTO events (id, category, host_id) VALUES (?, ?, ?)`, e.ID, category, host); err != nil {
			return fmt.Errorf("insert event %d: %w", e.ID, err)
		}
	}
	for _, p := range f.Participants {
		if err = exec(`INSERT INTO event_participants (event_id, user_id, status) VALUES (?, ?, ?)`, p.EventID, p.UserID, p.Status); err != nil {
			return fmt.Errorf("insert participant %d/%d: %w", p.EventID, p.UserID, err)
		}
	}
	for _, s := range f.Saved {
		if err = exec(`INSERT INTO saved_events (user_id, event_id) VALUES (?, ?)`, s.UserID, s.EventID); err != nil {
			return fmt.Errorf("insert saved event %d/%d: %w", s.UserID, s.EventID, err)
		}
	}
	for _, c := range f.Connections {
		if err = exec(`INSERT INTO connections (requester_id, addressee_id, status) VALUES (?, ?, ?)`, c.RequesterID, c.AddresseeID, c.Status); err != nil {
			return fmt.Errorf("insert connection %d->%d: %w", c.RequesterID, c.AddresseeID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture: %w", err)
	}
	return nil
}

// SeedMockData loads MockFixture into an empty store. A store that already
// holds events is left untouched.
func (db *DB) SeedMockData(ctx context.Context) error {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if n > 0 {
		logging.Info().Int("events", n).Msg("Store already populated, skipping mock data")
		return nil
	}

	f := MockFixture()
	if err := db.LoadFixture(ctx, f); err != nil {
		return err
	}
	logging.Info().
		Int("events", len(f.Events)).
		Int("participants", len(f.Participants)).
		Int("connections", len(f.Connections)).
		Msg("Mock data seeded")
	return nil
}

// MockFixture is a small demo graph. User 1 is a regular at sports and
// coffee events, is connected to users 2, 3 and 4, and has a pending
// request to user 5.
func MockFixture() Fixture {
	host := func(id int) *int { return &id }

	return Fixture{
		Events: []EventRow{
			{ID: 1, Category: "sports", HostID: host(2)},
			{ID: 2, Category: "sports", HostID: host(6)},
			{ID: 3, Category: "coffee", HostID: host(3)},
			{ID: 4, Category: "coffee"},
			{ID: 5, Category: "music", HostID: host(4)},
			{ID: 6, Category: "music", HostID: host(5)},
			{ID: 7, Category: "tech", HostID: host(2)},
			{ID: 8, Category: "art"},
			{ID: 9, Category: "sports", HostID: host(1)},
			{ID: 10, Category: "hiking", HostID: host(3)},
			{ID: 11},
			{ID: 12, Category: "tech", HostID: host(6)},
		},
		Participants: []ParticipantRow{
			{EventID: 1, UserID: 1, Status: "completed"},
			{EventID: 2, UserID: 1, Status: "joined"},
			{EventID: 3, UserID: 1, Status: "approved"},
			{EventID: 4, UserID: 1, Status: "declined"},
			{EventID: 5, UserID: 2, Status: "approved"},
			{EventID: 5, UserID: 3, Status: "approved"},
			{EventID: 5, UserID: 4, Status: "pending"},
			{EventID: 7, UserID: 2, Status: "approved"},
			{EventID: 10, UserID: 3, Status: "approved"},
			{EventID: 10, UserID: 4, Status: "approved"},
			{EventID: 10, UserID: 6, Status: "approved"},
			{EventID: 12, UserID: 5, Status: "approved"},
		},
		Saved: []SavedRow{
			{UserID: 1, EventID: 5},
			{UserID: 1, EventID: 6},
			{UserID: 1, EventID: 8},
		},
		Connections: []ConnectionRow{
			{RequesterID: 1, AddresseeID: 2, Status: "accepted"},
			{RequesterID: 3, AddresseeID: 1, Status: "accepted"},
			{RequesterID: 1, AddresseeID: 4, Status: "accepted"},
			{RequesterID: 1, AddresseeID: 5, Status: "pending"},
			{RequesterID: 6, AddresseeID: 2, Status: "accepted"},
		},
	}
}
