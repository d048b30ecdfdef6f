// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no row matches the requested id or slug.
var ErrNotFound = errors.New("store: record not found")

// Queries provides typed access to every table. It holds no state besides
// the database handle and is safe for concurrent use.
type Queries struct {
	db *sqlx.DB
}

// New creates Queries bound to the given database.
func New(db *sqlx.DB) *Queries {
	return &Queries{db: db}
}

// DB returns the underlying database handle.
func (q *Queries) DB() *sqlx.DB {
	return q.db
}

// Ping verifies the database connection is alive.
func (q *Queries) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}

// ListFilter narrows list queries. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	Search   string
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// whereClause accumulates SQL conditions and their arguments.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// search adds a case-insensitive substring match across the given columns.
func (w *whereClause) search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+` LIKE ? ESCAPE '\'`)
		w.args = append(w.args, pattern)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildWhere translates a filter into a WHERE clause for a table whose
// featured flag lives in featuredCol and whose text lives in searchCols.
func buildWhere(f ListFilter, featuredCol string, searchCols ...string) *whereClause {
	w := &whereClause{}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.Featured != nil && featuredCol != "" {
		w.add(featuredCol+" = ?", *f.Featured)
	}
	w.search(f.Search, searchCols...)
	return w
}

// paginate appends ORDER BY and LIMIT/OFFSET to a list query.
func paginate(query string, orderCol string, f ListFilter, args []any) (string, []any) {
	query += " ORDER BY " + orderCol + " DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	return query, args
}

// count runs a COUNT(*) query.
func (q *Queries) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := q.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// getOne runs a single-row query, translating sql.ErrNoRows to ErrNotFound.
func getOne[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) (T, error) {
	var row T
	if err := db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, ErrNotFound
		}
		return row, err
	}
	return row, nil
}

// requireAffected returns ErrNotFound when a write touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
