package lib

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Repository errors. Callers match with errors.Is; messages carry the detail.
var (
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("service unavailable")
	ErrStorage      = errors.New("storage failure")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// MapDBError classifies driver errors into the repository taxonomy. Unknown errors are
// returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if code := sqlState(err); code != "" {
		switch {
		case code == "23505", code == "23503": // unique_violation, foreign_key_violation
			return errors.Join(ErrConflict, err)
		case code == "23502", code == "22P02": // not_null_violation, invalid_text_representation
			return errors.Join(ErrInvalidInput, err)
		case code == "53300", code == "57P03", strings.HasPrefix(code, "08"):
			return errors.Join(ErrUnavailable, err)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(ErrConflict, err)
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return errors.Join(ErrInvalidInput, err)
	case strings.Contains(msg, "database is locked"):
		return errors.Join(ErrUnavailable, err)
	}
	return err
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var driverErr pgdriver.Error
	if errors.As(err, &driverErr) {
		return driverErr.Field('C')
	}
	return ""
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
func IsUnavailable(err error) bool  { return errors.Is(err, ErrUnavailable) }

// IsUnauthorized covers every failure that should surface as 401
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidCredentials)
}
