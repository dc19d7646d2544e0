package media

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type MediaRoutesManager struct {
	logger       *gecho.Logger
	mediaService *services.MediaService
	mw           *middleware.Middleware
	maxUpload    int64
}

func NewMediaRoutesManager(
	logger *gecho.Logger,
	mediaService *services.MediaService,
	mw *middleware.Middleware,
	maxUpload int64,
) *MediaRoutesManager {
	return &MediaRoutesManager{
		logger:       logger,
		mediaService: mediaService,
		mw:           mw,
		maxUpload:    maxUpload,
	}
}

func (mrm *MediaRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/landing-media", mrm.FetchLandingMedia)

	r.Group(func(r chi.Router) {
		r.Use(mrm.mw.RequireAdmin)
		r.Get("/media", mrm.ListMedia)
		r.Get("/media/{id}", mrm.GetMedia)
		r.Post("/media", mrm.UploadMedia)
		r.Delete("/media/{id}", mrm.DeleteMedia)

		r.Put("/landing-media", mrm.UpdateLandingMedia)
	})
}
