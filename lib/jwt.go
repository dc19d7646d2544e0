package lib

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"svd_ambalaj_server/structs"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AdminRole = "admin"

// GenerateAdminToken signs an HS256 token for the admin user valid for ttl.
func GenerateAdminToken(username, secret string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  username,
		"role": AdminRole,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AdminClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}

	role, ok := claims["role"].(string)
	if !ok || role != AdminRole {
		return nil, fmt.Errorf("%w: invalid role claim", ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	return &structs.AdminClaims{
		Username: sub,
		Role:     role,
		Exp:      time.Unix(int64(exp), 0),
	}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}
