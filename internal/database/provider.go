// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/database/query"
	"github.com/tomtom215/tokirank/internal/metrics"
	"github.com/tomtom215/tokirank/internal/recommend"
)

var _ recommend.ContextProvider = (*DB)(nil)

// Participation statuses that count towards category history.
var historyStatuses = []string{"approved", "joined", "completed"}

const (
	opCategoryParticipation   = "category_participation"
	opSavedCategoryCounts     = "saved_category_counts"
	opAcceptedConnections     = "accepted_connections"
	opConnectionParticipation = "connection_participation"
)

// categoryExpr normalizes missing categories to the engine's bucket.
const categoryExpr = "COALESCE(NULLIF(e.category, ''), '" + recommend.UnknownCategory + "')"

// CategoryParticipation counts the user's approved, joined or completed
// participations per event category.
func (db *DB) CategoryParticipation(ctx context.Context, userID int) (map[string]int, error) {
	wb := query.NewWhereBuilder().
		AddClause("p.user_id = ?", userID).
		AddStringIn("p.status", historyStatuses)
	where, args := wb.BuildWithPrefix()

	q := `SELECT ` + categoryExpr + ` AS category, COUNT(*) AS n
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		` + where + `
		GROUP BY 1`

	counts := make(map[string]int)
	err := db.read(ctx, opCategoryParticipation, q, args, func(rows *sql.Rows) error {
		return scanCategoryCounts(rows, counts)
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// SavedCategoryCounts counts the user's saved events per category.
func (db *DB) SavedCategoryCounts(ctx context.Context, userID int) (map[string]int, error) {
	q := `SELECT ` + categoryExpr + ` AS category, COUNT(*) AS n
		FROM saved_events s
		JOIN events e ON e.id = s.event_id
		WHERE s.user_id = ?
		GROUP BY 1`

	counts := make(map[string]int)
	err := db.read(ctx, opSavedCategoryCounts, q, []interface{}{userID}, func(rows *sql.Rows) error {
		return scanCategoryCounts(rows, counts)
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// AcceptedConnections returns the distinct users with an accepted
// connection to userID in either direction.
func (db *DB) AcceptedConnections(ctx context.Context, userID int) ([]int, error) {
	q := `SELECT DISTINCT CASE WHEN requester_id = ? THEN addressee_id ELSE requester_id END AS other
		FROM connections
		WHERE status = 'accepted' AND (requester_id = ? OR addressee_id = ?)
		ORDER BY other`

	var ids []int
	err := db.read(ctx, opAcceptedConnections, q, []interface{}{userID, userID, userID}, func(rows *sql.Rows) error {
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				return err
			}
			if id != userID {
				ids = append(ids, id)
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ConnectionParticipation counts, per event in eventIDs, the users in
// userIDs holding an approved participation. Events without any are absent
// from the result.
func (db *DB) ConnectionParticipation(ctx context.Context, userIDs, eventIDs []int) (map[int]int, error) {
	counts := make(map[int]int)
	if len(userIDs) == 0 || len(eventIDs) == 0 {
		return counts, nil
	}

	wb := query.NewWhereBuilder().
		AddClause("status = ?", "approved").
		AddIntIn("user_id", userIDs).
		AddIntIn("event_id", eventIDs)
	where, args := wb.BuildWithPrefix()

	q := `SELECT event_id, COUNT(DISTINCT user_id) AS n
		FROM event_participants
		` + where + `
		GROUP BY event_id`

	err := db.read(ctx, opConnectionParticipation, q, args, func(rows *sql.Rows) error {
		for rows.Next() {
			var eventID, n int
			if err := rows.Scan(&eventID, &n); err != nil {
				return err
			}
			counts[eventID] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// read runs one query with timeout, breaker, tracing and metrics, handing
// the rows to scan.
func (db *DB) read(ctx context.Context, op, q string, args []interface{}, scan func(*sql.Rows) error) error {
	start := time.Now()
	ctx, span := db.tracer.Start(ctx, "database."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", db.driver),
			attribute.String("db.operation", op),
		))
	defer span.End()

	if db.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.queryTimeout)
		defer cancel()
	}

	err := db.execute(func() error {
		rows, err := db.conn.QueryContext(ctx, db.rebind(q), args...)
		if err != nil {
			return err
		}
		defer closeRows(rows, op)
		return scan(rows)
	})

	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
		return fmt.Errorf("query %s: %w", op, err)
	}
	return nil
}

func scanCategoryCounts(rows *sql.Rows, into map[string]int) error {
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return err
		}
		into[category] = n
	}
	return rows.Err()
}
