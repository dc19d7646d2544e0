package middleware

import (
	"context"
	"net/http"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing admin data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// RequireAdmin protects routes to requests carrying a valid admin bearer token
func (mw *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.BearerToken(r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.missingToken"), gecho.Send())
			return
		}

		claims, err := mw.authService.VerifyToken(token)
		if err != nil {
			mw.logger.Warn("Rejected admin token", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidToken"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext is a helper function to extract the admin claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AdminClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AdminClaims)
	return claims, ok
}
