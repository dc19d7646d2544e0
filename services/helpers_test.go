package services

import (
	"context"
	"encoding/json"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/database/dbtest"
	"svd_ambalaj_server/structs"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// decode turns a JSON literal into the value a request body would carry
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

// clock returns a now func that advances one second per call
func clock(start time.Time) func() time.Time {
	current := start.Add(-time.Second)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCacheServiceWithClient(testLogger(), client, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func seedCategory(t *testing.T, cs *CatalogService, name string) *structs.Category {
	t.Helper()
	category, err := cs.CreateCategory(context.Background(), structs.CategoryPayload{Name: strPtr(name)})
	require.NoError(t, err)
	return category
}

func newTestCatalog(t *testing.T) (*CatalogService, *database.DB) {
	t.Helper()
	db := dbtest.New(t)
	return NewCatalogService(testLogger(), db, nil), db
}

func testLogger() *gecho.Logger {
	return dbtest.Logger()
}
