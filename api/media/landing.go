package media

import (
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

// FetchLandingMedia handles GET /landing-media; an unset record yields the defaults
func (mrm *MediaRoutesManager) FetchLandingMedia(w http.ResponseWriter, r *http.Request) {
	landing, err := mrm.mediaService.FetchLandingMedia(r.Context())
	if err != nil {
		handling.HandleError(err, "error.landingMedia", mrm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(landing), gecho.Send())
}

func (mrm *MediaRoutesManager) UpdateLandingMedia(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.LandingMediaPayload](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.landingMedia.invalid"), gecho.Send())
		return
	}

	landing, err := mrm.mediaService.UpdateLandingMedia(r.Context(), *body)
	if err != nil {
		handling.HandleError(err, "error.landingMedia", mrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.landingMedia.updated"),
		gecho.WithData(landing),
		gecho.Send(),
	)
}
