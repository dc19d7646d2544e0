package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ClearCache drops every cached catalog and landing media entry
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := drm.cacheService.Clear(r.Context()); err != nil {
		drm.logger.Error("Failed to clear cache", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cache.clearFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cache.cleared"),
		gecho.Send(),
	)
}
