package services

import (
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	CacheService   *CacheService
	HealthService  *HealthService
	CatalogService *CatalogService
	OrderService   *OrderService
	MediaService   *MediaService
	SampleService  *SampleService
	Notifier       Notifier
}

// NewServiceManager builds every service once around the shared pool. cache may be nil.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cache *CacheService) *ServiceManager {
	notifier := NewNotifier(logger, cfg.Email)
	store := NewLocalFileStore(cfg.Storage.UploadsDir, cfg.Storage.PublicBaseURL)

	return &ServiceManager{
		AuthService:    NewAuthService(logger, cfg.Auth),
		CacheService:   cache,
		HealthService:  NewHealthService(logger, db, cache),
		CatalogService: NewCatalogService(logger, db, cache),
		OrderService:   NewOrderService(logger, db, notifier),
		MediaService:   NewMediaService(logger, db, cache, store, cfg.Storage.MaxSizeBytes),
		SampleService:  NewSampleService(logger, db, notifier),
		Notifier:       notifier,
	}
}
