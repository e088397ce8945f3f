// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package query

import (
	"strconv"
	"strings"
)

// WhereBuilder collects AND-joined conditions and their positional
// arguments. Placeholders are always "?"; use Rebind for postgres.
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder returns an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIntIn adds "column IN (?, ...)". An empty ids slice matches nothing.
func (wb *WhereBuilder) AddIntIn(column string, ids []int) *WhereBuilder {
	return addIn(wb, column, ids)
}

// AddStringIn adds "column IN (?, ...)". An empty values slice matches nothing.
func (wb *WhereBuilder) AddStringIn(column string, values []string) *WhereBuilder {
	return addIn(wb, column, values)
}

func addIn[T any](wb *WhereBuilder, column string, vals []T) *WhereBuilder {
	if len(vals) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	for _, v := range vals {
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+Placeholders(len(vals))+")")
	return wb
}

// Build joins the clauses with AND. With no clauses it returns "1=1" and a
// non-nil empty argument slice.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix is Build with a leading "WHERE ".
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	where, args := wb.Build()
	return "WHERE " + where, args
}

// Placeholders returns n comma-separated question marks.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// BindStyle is a driver's positional parameter syntax.
type BindStyle int

const (
	// Question is "?", used by duckdb and sqlite.
	Question BindStyle = iota
	// Dollar is "$1, $2, ...", used by postgres.
	Dollar
)

// Rebind rewrites "?" placeholders in q for style.
func Rebind(style BindStyle, q string) string {
	if style != Dollar || !strings.Contains(q, "?") {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	inString := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
