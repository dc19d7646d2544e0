package api

import (
	"svd_ambalaj_server/api/auth"
	"svd_ambalaj_server/api/catalog"
	"svd_ambalaj_server/api/debug"
	"svd_ambalaj_server/api/health"
	"svd_ambalaj_server/api/media"
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/api/orders"
	"svd_ambalaj_server/api/samples"
	"svd_ambalaj_server/services"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	catalogRoutes *catalog.CatalogRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	mediaRoutes   *media.MediaRoutesManager
	sampleRoutes  *samples.SampleRoutesManager
	authRoutes    *auth.AuthRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		catalogRoutes: catalog.NewCatalogRoutesManager(logger, sm.CatalogService, mw),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		mediaRoutes:   media.NewMediaRoutesManager(logger, sm.MediaService, mw, cfg.Storage.MaxSizeBytes),
		sampleRoutes:  samples.NewSampleRoutesManager(logger, sm.SampleService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(logger, sm.CacheService, mw, cfg.Server.Environment != "production"),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.catalogRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.mediaRoutes.RegisterRoutes(r)
	rm.sampleRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
