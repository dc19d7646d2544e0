package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "53300"}))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(context.DeadlineExceeded))
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.False(t, isRetryableError(errors.New("syntax error")))
	assert.False(t, isRetryableError(nil))
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2, EnableRetry: true}

	attempts := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	permanent := errors.New("permission denied")
	err = RetryWithBackoff(context.Background(), cfg, func() error {
		attempts++
		return permanent
	})
	assert.Same(t, permanent, err)
	assert.Equal(t, 1, attempts)
}
