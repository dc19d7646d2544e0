// Package dbtest opens migrated in-memory SQLite databases for package tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/structs"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
)

var counter atomic.Int64

// Config returns a single-connection in-memory SQLite configuration unique to this call.
// One connection keeps the memory database alive and makes pool exhaustion observable.
func Config(t testing.TB) *structs.DatabaseConfig {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return &structs.DatabaseConfig{
		Driver:      "sqlite",
		URL:         fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, counter.Add(1)),
		MaxConns:    1,
		MinConns:    1,
		PoolTimeout: 2 * time.Second,
	}
}

// New returns a migrated database that is closed when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()
	return NewWithConfig(t, Config(t))
}

func NewWithConfig(t testing.TB, cfg *structs.DatabaseConfig) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, Logger())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func Logger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}
