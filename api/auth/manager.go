package auth

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(logger *gecho.Logger, authService *services.AuthService, mw *middleware.Middleware) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		mw:          mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(ar.mw.RateLimit()).Post("/login", ar.HandleLogin)
		r.With(ar.mw.RequireAdmin).Get("/me", ar.HandleMe)
	})
}
