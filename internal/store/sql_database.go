package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

// Retry limits for transient database failures.
const (
	txMaxRetries     = 3
	txInitialBackoff = 50 * time.Millisecond
)

// ErrorClassificator decides whether a failed database call may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the dialect's error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// IsRetryable reports whether err is a transient failure for this
// database.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// InTx runs fn inside a transaction and commits it. Transactions failing
// with a retryable error are rolled back and run again a few times.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = txInitialBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, txMaxRetries), ctx)

	return backoff.Retry(func() error {
		err := db.runTx(ctx, fn)
		if err != nil && !db.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
