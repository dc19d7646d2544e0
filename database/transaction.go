package database

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"svd_ambalaj_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// acquire takes one connection from the pool, waiting at most poolTimeout. A timeout
// while the caller is still waiting is reported as lib.ErrUnavailable.
func (db *DB) acquire(ctx context.Context) (bun.Conn, error) {
	acquireCtx := ctx
	if db.poolTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, db.poolTimeout)
		defer cancel()
	}

	conn, err := db.Conn(acquireCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			db.logger.Warn("Connection pool exhausted",
				gecho.Field("pool_timeout", db.poolTimeout),
				gecho.Field("in_use", db.GetStats().InUse),
			)
			return bun.Conn{}, fmt.Errorf("%w: no database connection available within %s", lib.ErrUnavailable, db.poolTimeout)
		}
		return bun.Conn{}, lib.MapDBError(err)
	}
	return conn, nil
}

func (db *DB) release(conn bun.Conn) {
	if err := conn.Close(); err != nil {
		db.logger.Warn("Failed to release database connection", gecho.Field("error", err))
	}
}

// Execute runs fn on a single pooled connection and always returns it to the pool
func (db *DB) Execute(ctx context.Context, fn func(ctx context.Context, q bun.IDB) error) error {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer db.release(conn)

	return fn(ctx, conn)
}

// ExecuteWithResult is Execute for work that produces a value
func ExecuteWithResult[T any](ctx context.Context, db *DB, fn func(ctx context.Context, q bun.IDB) (T, error)) (T, error) {
	var result T
	err := db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		var err error
		result, err = fn(ctx, q)
		return err
	})
	return result, err
}

// RunInTransaction executes fn inside a transaction on one pooled connection. It commits
// when fn returns nil and rolls back when fn fails or panics; fn's error is returned as is.
func (db *DB) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) (err error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer db.release(conn)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", lib.MapDBError(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			db.logger.Error("Panic inside transaction, rolled back",
				gecho.Field("panic", p),
				gecho.Field("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("transaction panicked: %v", p)
			return
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				db.logger.Warn("Failed to roll back transaction", gecho.Field("error", rbErr))
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", lib.MapDBError(commitErr))
		}
	}()

	err = fn(ctx, tx)
	return err
}

// TransactionWithResult executes a function within a transaction and returns a result
func TransactionWithResult[T any](ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
