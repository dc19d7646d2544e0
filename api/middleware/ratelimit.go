package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getClientIP extracts the client IP; chi's RealIP middleware has already applied proxy headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// RateLimit counts requests per client IP and path in fixed windows. Without Redis, or
// when Redis fails, requests are let through.
func (mw *Middleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := mw.cfg.RateLimit
			if cfg == nil || !cfg.Enabled || !mw.cacheService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			endpoint := r.Method + " " + r.URL.Path
			limit, window := cfg.Requests, cfg.Window

			count, err := mw.cacheService.IncrementRateLimit(r.Context(), clientIP, endpoint, window)
			if err != nil {
				// Cache error - log and allow request (fail open)
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage("error.rateLimitExceeded"),
					gecho.WithData(map[string]any{
						"limit":               limit,
						"retry_after_seconds": int(window.Seconds()),
					}),
					gecho.Send())
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, limit-count)))
			next.ServeHTTP(w, r)
		})
	}
}
