package auth

import (
	"net/http"
	"svd_ambalaj_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

// HandleMe echoes the verified admin claims
func (ar *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.unauthorized"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"username":  claims.Username,
			"role":      claims.Role,
			"expiresAt": claims.Exp,
		}),
		gecho.Send(),
	)
}
