package services

import (
	"fmt"
	"strings"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// AuthService authenticates the single configured admin account and issues bearer tokens
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.AuthConfig
}

func NewAuthService(logger *gecho.Logger, cfg *structs.AuthConfig) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
	}
}

// Configured reports whether admin login can succeed at all
func (as *AuthService) Configured() bool {
	return as.cfg != nil &&
		as.cfg.TokenSecret != "" &&
		(as.cfg.AdminPasswordHash != "" || as.cfg.AdminPassword != "")
}

func (as *AuthService) Login(req *structs.LoginRequest) (*structs.LoginResponse, error) {
	startTime := time.Now()

	if !as.Configured() {
		as.logger.Warn("Admin login attempted but admin credentials are not configured")
		return nil, fmt.Errorf("%w: admin login is not configured", lib.ErrUnavailable)
	}

	username := strings.TrimSpace(req.Username)
	usernameOK := lib.SecureCompare([]byte(username), []byte(as.cfg.AdminUsername))

	passwordOK, err := as.verifyPassword(req.Password)
	if err != nil {
		as.logger.Error("Failed to verify admin password hash", gecho.Field("error", err))
		return nil, lib.ErrInvalidCredentials
	}
	if !usernameOK || !passwordOK {
		as.logger.Debug("Admin login rejected", gecho.Field("username", username))
		return nil, lib.ErrInvalidCredentials
	}

	token, expiresAt, err := lib.GenerateAdminToken(as.cfg.AdminUsername, as.cfg.TokenSecret, as.cfg.TokenTTL)
	if err != nil {
		as.logger.Error("Failed to generate admin token", gecho.Field("error", err))
		return nil, err
	}

	as.logger.Info("Admin logged in",
		gecho.Field("username", as.cfg.AdminUsername),
		gecho.Field("duration", time.Since(startTime)),
	)
	return &structs.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  as.cfg.AdminUsername,
	}, nil
}

// verifyPassword prefers the argon2id hash; the plain password is compared in constant time
func (as *AuthService) verifyPassword(password string) (bool, error) {
	if as.cfg.AdminPasswordHash != "" {
		return lib.VerifyPassword(password, as.cfg.AdminPasswordHash)
	}
	return lib.SecureCompare([]byte(password), []byte(as.cfg.AdminPassword)), nil
}

// VerifyToken returns the admin claims of a valid token
func (as *AuthService) VerifyToken(token string) (*structs.AdminClaims, error) {
	if as.cfg == nil || as.cfg.TokenSecret == "" {
		return nil, lib.ErrUnauthorized
	}
	return lib.ParseToken(token, as.cfg.TokenSecret)
}
