package samples

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type SampleRoutesManager struct {
	logger        *gecho.Logger
	sampleService *services.SampleService
	mw            *middleware.Middleware
}

func NewSampleRoutesManager(logger *gecho.Logger, sampleService *services.SampleService, mw *middleware.Middleware) *SampleRoutesManager {
	return &SampleRoutesManager{
		logger:        logger,
		sampleService: sampleService,
		mw:            mw,
	}
}

func (srm *SampleRoutesManager) RegisterRoutes(r chi.Router) {
	r.With(srm.mw.RateLimit()).Post("/samples", srm.CreateSampleRequest)
}
