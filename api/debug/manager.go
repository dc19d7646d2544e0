package debug

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cacheService *services.CacheService
	mw           *middleware.Middleware
	enabled      bool
}

func NewDebugRoutesManager(logger *gecho.Logger, cacheService *services.CacheService, mw *middleware.Middleware, enabled bool) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cacheService: cacheService,
		mw:           mw,
		enabled:      enabled,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !drm.enabled {
		return
	}
	r.Route("/debug", func(r chi.Router) {
		r.Use(drm.mw.RequireAdmin)
		r.Post("/cache/clear", drm.ClearCache)
	})
}
