package config

import (
	"svd_ambalaj_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_GO", "15s")
	t.Setenv("TEST_DURATION_MS", "10000")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 15*time.Second, getEnvAsTimeDuration("TEST_DURATION_GO", time.Minute))
	assert.Equal(t, 10*time.Second, getEnvAsTimeDuration("TEST_DURATION_MS", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_DURATION_BAD", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_DURATION_UNSET", time.Minute))
}

func TestGetFirstEnv(t *testing.T) {
	t.Setenv("TEST_URL_A", "")
	t.Setenv("TEST_URL_B", "postgres://b")

	assert.Equal(t, "postgres://b", getFirstEnv([]string{"TEST_URL_A", "TEST_URL_B"}, "fallback"))
	assert.Equal(t, "fallback", getFirstEnv([]string{"TEST_URL_A"}, "fallback"))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
}

func TestLoadPoolFallbacks(t *testing.T) {
	t.Setenv("PG_POOL_MAX", "4")
	t.Setenv("PG_IDLE_TIMEOUT", "2500")

	cfg := Load()
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, 2500*time.Millisecond, cfg.Database.MaxIdleTime)
	assert.Equal(t, 120*time.Minute, cfg.Auth.TokenTTL)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, "warn", LogLevel(&structs.ServerConfig{LogLevel: "warn", Environment: "production"}))
	assert.Equal(t, "info", LogLevel(&structs.ServerConfig{Environment: "production"}))
	assert.Equal(t, "debug", LogLevel(&structs.ServerConfig{Environment: "development"}))
}

func TestGetEnvAsBytes(t *testing.T) {
	t.Setenv("TEST_BYTES_PLAIN", "2048")
	t.Setenv("TEST_BYTES_UNIT", "5 MiB")
	t.Setenv("TEST_BYTES_BAD", "lots")

	assert.Equal(t, int64(2048), getEnvAsBytes("TEST_BYTES_PLAIN", 1))
	assert.Equal(t, int64(5*1024*1024), getEnvAsBytes("TEST_BYTES_UNIT", 1))
	assert.Equal(t, int64(1), getEnvAsBytes("TEST_BYTES_BAD", 1))
	assert.Equal(t, int64(1), getEnvAsBytes("TEST_BYTES_UNSET", 1))
}
