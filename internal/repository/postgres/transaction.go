package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// serializableAttempts bounds how often a serializable transaction is
// replayed after the database aborts it.
const serializableAttempts = 3

type transactionContextKey struct{}

var txContextKey = transactionContextKey{}

type txStarter interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// TransactionManager stores the open transaction in the context so repositories
// called inside fn share it.
type TransactionManager struct {
	db txStarter
}

func NewTransactionManager(db txStarter) *TransactionManager {
	if db == nil {
		return nil
	}
	return &TransactionManager{db: db}
}

// WithinReadOnly runs fn in a read-only transaction.
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// WithinReadWrite runs fn in a read-committed read-write transaction.
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// WithinSerializable runs fn in a SERIALIZABLE transaction and replays it when
// the database reports a serialization failure. fn must be safe to repeat.
func (m *TransactionManager) WithinSerializable(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	var err error
	for attempt := 1; attempt <= serializableAttempts; attempt++ {
		err = m.within(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !errors.Is(err, repository.ErrConflict) {
			return err
		}
		logger.Debug("Serializable transaction aborted, retrying", "attempt", attempt)
	}
	return err
}

func (m *TransactionManager) within(ctx context.Context, opts *sql.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}

	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", translateError(err))
	}

	committed = true
	return nil
}

func contextWithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey).(*sqlx.Tx)
	return tx, ok
}

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.ExtContext
}

// QueryerFromContext returns the transaction carried by ctx, or fallback when there is none.
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}
