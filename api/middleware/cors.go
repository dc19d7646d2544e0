package middleware

import (
	"github.com/rs/cors"
)

func (mw *Middleware) SetupCORS() *cors.Cors {
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   mw.cfg.Cors.AllowOrigins,
		AllowedMethods:   mw.cfg.Cors.AllowMethods,
		AllowedHeaders:   mw.cfg.Cors.AllowHeaders,
		ExposedHeaders:   mw.cfg.Cors.ExposedHeaders,
		AllowCredentials: mw.cfg.Cors.AllowCredentials,
		MaxAge:           600,
	})

	return corsMiddleware
}
