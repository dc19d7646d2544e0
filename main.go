package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"svd_ambalaj_server/api"
	"svd_ambalaj_server/config"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/services"
	"svd_ambalaj_server/structs"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}

	cache, err := services.NewCacheService(logger, cfg.Cache)
	if err != nil {
		// The cache is optional; reads go straight to the database without it.
		logger.Warn("Failed to initialize cache, continuing without it", gecho.Field("error", err))
		cache = nil
	}

	sm := services.NewServiceManager(logger, cfg, db, cache)
	if !sm.AuthService.Configured() {
		logger.Warn("Admin credentials are not configured, admin login is disabled")
	}

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, sm),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", gecho.Field("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal, draining connections")

	shutdown(server, sm, db)
}

// shutdown stops accepting requests, waits for in-flight work, then releases the pools
func shutdown(server *http.Server, sm *services.ServiceManager, db *database.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", gecho.Field("error", err))
	}

	if waiter, ok := sm.Notifier.(interface{ Wait() }); ok {
		waiter.Wait()
	}

	if err := sm.CacheService.Close(); err != nil {
		logger.Warn("Failed to close cache", gecho.Field("error", err))
	}

	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", gecho.Field("error", err))
	}

	logger.Info("Shutdown complete")
}
