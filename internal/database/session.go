package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type txKey struct{}

// SQLExecutor is the common surface of *sql.DB and *sql.Tx, so the same
// query code runs inside or outside a transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Session is the scoped transaction abstraction. DoTransactionally runs a
// function inside a transaction whose handle travels in the context; the
// transaction commits when the function returns nil and rolls back on error
// or panic, so no failure path can leave partial state visible.
type Session interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Session, error)
	DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error
	Rollback() error
	Commit() error
	Context() context.Context
}

type sqlSession struct {
	db  *sql.DB
	tx  *sql.Tx
	ctx context.Context
	log *slog.Logger
}

func NewSession(db *sql.DB, log *slog.Logger) Session {
	return &sqlSession{
		db:  db,
		log: log,
	}
}

func (s *sqlSession) BeginTx(ctx context.Context, opts *sql.TxOptions) (Session, error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("session: failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	return &sqlSession{
		db:  s.db,
		tx:  tx,
		ctx: txCtx,
		log: s.log,
	}, nil
}

func (s *sqlSession) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	session, err := s.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = session.Rollback()
			panic(p)
		} else if err != nil {
			if rollbackErr := session.Rollback(); rollbackErr != nil {
				s.log.Error("failed to rollback transaction",
					slog.String("rollback_error", rollbackErr.Error()),
					slog.String("original_error", err.Error()))
			}
		} else {
			if commitErr := session.Commit(); commitErr != nil {
				err = fmt.Errorf("session: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	err = fn(session.Context())
	return err
}

func (s *sqlSession) Rollback() error {
	if s.tx == nil {
		return fmt.Errorf("session: no active transaction to rollback")
	}
	return s.tx.Rollback()
}

func (s *sqlSession) Commit() error {
	if s.tx == nil {
		return fmt.Errorf("session: no active transaction to commit")
	}
	return s.tx.Commit()
}

func (s *sqlSession) Context() context.Context {
	return s.ctx
}

// GetSQLExecutor returns the transaction stored in the context, if one is
// active, and the pool otherwise.
func GetSQLExecutor(ctx context.Context, fallbackDB *sql.DB) SQLExecutor {
	dbExecutor := ctx.Value(txKey{})
	if dbExecutor == nil {
		return fallbackDB
	}

	tx, ok := dbExecutor.(*sql.Tx)
	if !ok {
		panic(fmt.Sprintf("session: value in context for txKey is not a *sql.Tx, but %T", dbExecutor))
	}
	return tx
}

// DoTransactionally runs fn inside a transaction and hands back its result.
func DoTransactionally[T any](ctx context.Context, session Session, fn func(txCtx context.Context) (T, error)) (T, error) {
	var zero T
	var result T
	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		r, err := fn(txCtx)
		result = r
		return err
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}
