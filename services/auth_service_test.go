package services

import (
	"errors"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithPlainPassword(t *testing.T) {
	as := NewAuthService(testLogger(), &structs.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		TokenSecret:   "signing-key",
		TokenTTL:      time.Hour,
	})

	resp, err := as.Login(&structs.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims, err := as.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, lib.AdminRole, claims.Role)

	_, err = as.Login(&structs.LoginRequest{Username: "admin", Password: "wrong"})
	assert.True(t, errors.Is(err, lib.ErrInvalidCredentials))
	_, err = as.Login(&structs.LoginRequest{Username: "root", Password: "s3cret"})
	assert.True(t, errors.Is(err, lib.ErrInvalidCredentials))

	_, err = as.VerifyToken("garbage")
	assert.True(t, lib.IsUnauthorized(err))
}

func TestLoginWithPasswordHash(t *testing.T) {
	hash, err := lib.HashPassword("hashed-pass", structs.ArgonParams{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	require.NoError(t, err)

	as := NewAuthService(testLogger(), &structs.AuthConfig{
		AdminUsername:     "admin",
		AdminPassword:     "ignored-when-hash-set",
		AdminPasswordHash: hash,
		TokenSecret:       "signing-key",
		TokenTTL:          time.Minute,
	})

	_, err = as.Login(&structs.LoginRequest{Username: "admin", Password: "hashed-pass"})
	require.NoError(t, err)
	_, err = as.Login(&structs.LoginRequest{Username: "admin", Password: "ignored-when-hash-set"})
	assert.True(t, errors.Is(err, lib.ErrInvalidCredentials))
}

func TestLoginNotConfigured(t *testing.T) {
	as := NewAuthService(testLogger(), &structs.AuthConfig{AdminUsername: "admin", AdminPassword: "x"})
	assert.False(t, as.Configured())

	_, err := as.Login(&structs.LoginRequest{Username: "admin", Password: "x"})
	assert.True(t, lib.IsUnavailable(err))
	_, err = as.VerifyToken("anything")
	assert.True(t, lib.IsUnauthorized(err))
}
