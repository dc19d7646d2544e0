package auth

import (
	"errors"
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		ar.logger.Debug("Failed to extract request body", gecho.Field("error", err))
		var ve *lib.ValidationError
		if errors.As(err, &ve) {
			gecho.BadRequest(w, gecho.WithMessage("error.auth.checkLoginInformation"), gecho.WithData(ve), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("error.auth.checkLoginInformation"), gecho.Send())
		return
	}

	session, err := ar.authService.Login(body)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			ar.logger.Warn("Login failed", gecho.Field("username", body.Username))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
			return
		}
		handling.HandleError(err, "error.auth", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.auth.loggedIn"),
		gecho.WithData(session),
		gecho.Send(),
	)
}
