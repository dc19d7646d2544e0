package database_test

import (
	"context"
	"errors"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/database/dbtest"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs/tables"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func insertCategory(ctx context.Context, q bun.IDB, id string) error {
	now := lib.Now()
	_, err := q.NewInsert().Model(&tables.Category{
		ID: id, Name: id, Slug: id, CreatedAt: now, UpdatedAt: now,
	}).Exec(ctx)
	return err
}

func countCategories(t *testing.T, db *database.DB) int {
	t.Helper()
	n, err := db.NewSelect().Model((*tables.Category)(nil)).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestRunInTransactionCommits(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	err := db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		return insertCategory(ctx, tx, "boxes")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countCategories(t, db))
	assert.Equal(t, 0, db.GetStats().InUse, "connection returned to the pool")
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	failure := errors.New("second step failed")

	err := db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		require.NoError(t, insertCategory(ctx, tx, "boxes"))
		return failure
	})
	assert.Same(t, failure, err, "error is returned unchanged")
	assert.Equal(t, 0, countCategories(t, db))
	assert.Equal(t, 0, db.GetStats().InUse)
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	err := db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		require.NoError(t, insertCategory(ctx, tx, "boxes"))
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 0, countCategories(t, db))
}

func TestTransactionWithResult(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	id, err := database.TransactionWithResult(ctx, db, func(ctx context.Context, tx bun.Tx) (string, error) {
		return "bags", insertCategory(ctx, tx, "bags")
	})
	require.NoError(t, err)
	assert.Equal(t, "bags", id)

	_, err = database.TransactionWithResult(ctx, db, func(ctx context.Context, tx bun.Tx) (string, error) {
		return "", insertCategory(ctx, tx, "bags")
	})
	assert.True(t, lib.IsConflict(lib.MapDBError(err)), "duplicate primary key: %v", err)
}

func TestExecuteReportsPoolExhaustion(t *testing.T) {
	cfg := dbtest.Config(t)
	cfg.PoolTimeout = 100 * time.Millisecond
	db := dbtest.NewWithConfig(t, cfg)
	ctx := context.Background()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	err := db.Execute(ctx, func(ctx context.Context, q bun.IDB) error { return nil })
	assert.ErrorIs(t, err, lib.ErrUnavailable)

	close(release)
	require.NoError(t, <-done)

	n, err := database.ExecuteWithResult(ctx, db, func(ctx context.Context, q bun.IDB) (int, error) {
		return q.NewSelect().Model((*tables.Category)(nil)).Count(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
