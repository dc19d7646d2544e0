package api

import (
	"net/http"
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/config"
	"svd_ambalaj_server/services"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(cfg *structs.Config, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.LogLevel(cfg.Server))
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.BodyLimitBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(standardLogger, cfg, sm, mw).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
