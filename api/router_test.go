package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"svd_ambalaj_server/database/dbtest"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/services"
	"svd_ambalaj_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type testApp struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestConfig(t *testing.T) *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        "SVD Ambalaj",
			Environment:    "test",
			LogLevel:       "error",
			BodyLimitBytes: 1 << 20,
		},
		Cors: &structs.CorsConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		},
		Database: dbtest.Config(t),
		Auth: &structs.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "paketle",
			TokenSecret:   testSecret,
			TokenTTL:      time.Hour,
		},
		Cache:     &structs.CacheConfig{},
		Email:     &structs.EmailConfig{},
		Storage:   &structs.StorageConfig{UploadsDir: t.TempDir(), PublicBaseURL: "https://cdn.example.com", MaxSizeBytes: 4096},
		RateLimit: &structs.RateLimitConfig{Enabled: true, Requests: 5, Window: time.Minute},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := newTestConfig(t)
	db := dbtest.NewWithConfig(t, cfg.Database)
	sm := services.NewServiceManager(dbtest.Logger(), cfg, db, nil)

	token, _, err := lib.GenerateAdminToken("admin", testSecret, time.Hour)
	require.NoError(t, err)

	return &testApp{t: t, handler: App(cfg, sm), token: token}
}

func (a *testApp) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestCatalogRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/categories", `{"name":"Bags"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/products", `{"title":"Kraft Bag","category":"bags","price":"12.50","bulkPricing":[{"minQty":100,"price":"11"},{"minQty":50,"price":"12"}]}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/products", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kraft Bag")

	rec = app.do(http.MethodGet, "/products/slug/kraft-bag", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/products/missing", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/categories/bags/products", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kraft-bag")

	// duplicate slug
	rec = app.do(http.MethodPost, "/products", `{"title":"Kraft Bag","category":"bags"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(http.MethodPost, "/products", `{"title":"Box","category":"nope"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodDelete, "/categories/bags", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(http.MethodDelete, "/products/kraft-bag", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPut, "/products/kraft-bag", `{"title":"Gone"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/categories", `{"name":"Bags"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/auth/me", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
}

func TestLoginRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"paketle"}`, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")

	rec = app.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/auth/login", `{"username":"admin"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/orders", `{
		"customer": {"name": "Ayşe", "email": "ayse@example.com"},
		"items": [{"productId": "bag", "title": "Bag", "quantity": "2", "price": 50}]
	}`, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/orders", `{"customer": {"name": "Ayşe"}, "items": []}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/orders?status=all", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ayse@example.com")

	rec = app.do(http.MethodGet, "/orders?from=yesterday", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/orders/missing", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPut, "/orders/missing/status", `{"status":"shipped"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPut, "/orders/missing/status", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/stats/overview?from=2000-01-01", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "totalRevenue")
}

func TestSampleRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/samples", `{"name":"Mehmet","product":"Kraft Bag","quantity":2}`, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requested")

	rec = app.do(http.MethodPost, "/samples", `{not json`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaRoutes(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n0000000000"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/media", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.token)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/uploads/")

	rec = app.do(http.MethodGet, "/media", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logo.png")

	req = httptest.NewRequest(http.MethodPost, "/media", strings.NewReader("plain"))
	req.Header.Set("Authorization", "Bearer "+app.token)
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodDelete, "/media/missing", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLandingMediaRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/landing-media", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "heroVideo")

	rec = app.do(http.MethodPut, "/landing-media", `{"heroVideo":{"src":"/v.mp4"},"heroGallery":["/a.jpg"," "]}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/landing-media", "", false)
	assert.Contains(t, rec.Body.String(), "/a.jpg")
}

func TestOpsRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health/database", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_db_pool_open")

	rec = app.do(http.MethodGet, "/does/not/exist", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
