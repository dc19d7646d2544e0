package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/services"
	"svd_ambalaj_server/structs"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T, cache *services.CacheService, limit int) *Middleware {
	t.Helper()
	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		Server:    &structs.ServerConfig{Environment: "test"},
		Cors:      &structs.CorsConfig{},
		Auth:      &structs.AuthConfig{AdminUsername: "admin", AdminPassword: "pw", TokenSecret: "mw-secret", TokenTTL: time.Hour},
		RateLimit: &structs.RateLimitConfig{Enabled: true, Requests: limit, Window: time.Minute},
	}
	return NewMiddleware(cfg, logger, services.NewAuthService(logger, cfg.Auth), cache)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := services.NewCacheServiceWithClient(gecho.NewDefaultLogger(), client, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	handler := newTestMiddleware(t, cache, 2).RateLimit()(okHandler)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
	rec := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = send("10.0.0.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other clients keep their own window
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	// no cache configured
	handler := newTestMiddleware(t, nil, 1).RateLimit()(okHandler)
	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/samples", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// redis gone
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	cache := services.NewCacheServiceWithClient(gecho.NewDefaultLogger(), client, time.Minute)
	mr.Close()

	handler = newTestMiddleware(t, cache, 1).RateLimit()(okHandler)
	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/samples", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	mw := newTestMiddleware(t, nil, 1)
	var seen *structs.AdminClaims
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	send := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(""))
	assert.Equal(t, http.StatusUnauthorized, send("Basic abc"))

	wrongSecret, _, err := lib.GenerateAdminToken("admin", "other-secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, send("Bearer "+wrongSecret))

	expired, _, err := lib.GenerateAdminToken("admin", "mw-secret", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, send("Bearer "+expired))
	assert.Nil(t, seen)

	valid, _, err := lib.GenerateAdminToken("admin", "mw-secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, send("Bearer "+valid))
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Username)
}

func TestBodyLimit(t *testing.T) {
	mw := newTestMiddleware(t, nil, 1)
	handler := mw.BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
