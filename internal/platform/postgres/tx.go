package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "civicdesk/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFrom returns the transaction RunInTx attached to ctx.
func txFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Executor is the subset of *sql.DB and *sql.Tx the stores use.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn returns the transaction carried by ctx, or db when there is none.
func Conn(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return db
}

// TxRunner runs a function inside a database transaction.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db, timeout: defaultTxTimeout}
}

// RunInTx begins a transaction, stores it in the context passed to fn and
// commits when fn returns nil. A default timeout applies when ctx has no
// deadline. Nested calls reuse the outer transaction.
func (t *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// Savepoint runs fn inside a SAVEPOINT when ctx carries a transaction, rolling
// back to it when fn fails so the outer transaction stays usable. Without a
// transaction fn runs directly.
func Savepoint(ctx context.Context, name string, fn func() error) error {
	tx, ok := txFrom(ctx)
	if !ok {
		return fn()
	}
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return rbErr
		}
		return err
	}
	_, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}
