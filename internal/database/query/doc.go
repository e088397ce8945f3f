// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

// Package query provides SQL building helpers for the database package.
//
// # WhereBuilder
//
// WhereBuilder assembles parameterized WHERE clauses with "?" placeholders:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("p.status = ?", "approved")
//	wb.AddIntIn("p.user_id", connectionIDs)
//	wb.AddIntIn("p.event_id", eventIDs)
//	where, args := wb.BuildWithPrefix()
//	// WHERE p.status = ? AND p.user_id IN (?, ?) AND p.event_id IN (?, ?, ?)
//
// An IN filter over an empty slice renders as a false predicate, so the
// query returns no rows instead of failing to parse.
//
// # Placeholders
//
// Queries are written once with "?" placeholders. Rebind rewrites them for
// drivers that use numbered parameters:
//
//	q := query.Rebind(query.Dollar, "SELECT 1 WHERE a = ? AND b = ?")
//	// SELECT 1 WHERE a = $1 AND b = $2
//
// Question marks inside single-quoted string literals are left alone.
package query
