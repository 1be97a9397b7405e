package database

import (
	"context"
	"database/sql"
	"time"
)

// SQLTemplate bundles the pool with the per-query timeout. Queries issued
// through it pick up an active transaction from the context, so store code
// is oblivious to transaction boundaries.
type SQLTemplate struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewSQLTemplate(db *sql.DB, timeout time.Duration) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
	}
}

func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	queryCtx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)
	rows, err := executor.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery expects exactly one row and returns sql.ErrNoRows when
// the query matches nothing.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T

	results, err := ExecuteQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, sql.ErrNoRows
	}

	return results[0], nil
}

func ExecuteUpdate(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (sql.Result, error) {
	queryCtx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)
	return executor.ExecContext(queryCtx, query, args...)
}
