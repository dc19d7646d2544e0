package handling

import (
	"errors"
	"net/http"
	"svd_ambalaj_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError writes the response for a service error. msg is the message key prefix of the
// failing operation, e.g. "error.products"; only the suffix varies with the error kind.
// Unknown errors are logged and answered with 500 without detail.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	switch {
	case lib.IsNotFound(err):
		logger.Debug("Resource not found", gecho.Field("error", err), gecho.Field("msg", msg))
		return gecho.NotFound(w, gecho.WithMessage(msg+".notFound"), gecho.Send())
	case lib.IsConflict(err):
		logger.Debug("Conflicting write", gecho.Field("error", err), gecho.Field("msg", msg))
		return gecho.Conflict(w, gecho.WithMessage(msg+".conflict"), gecho.Send())
	case lib.IsInvalidInput(err):
		logger.Debug("Invalid input", gecho.Field("error", err), gecho.Field("msg", msg))
		return gecho.BadRequest(w, gecho.WithMessage(msg+".invalid"), gecho.Send())
	case lib.IsUnauthorized(err):
		return gecho.Unauthorized(w, gecho.WithMessage("error.auth.unauthorized"), gecho.Send())
	case lib.IsUnavailable(err):
		logger.Warn("Dependency unavailable", gecho.Field("error", err), gecho.Field("msg", msg))
		return gecho.ServiceUnavailable(w, gecho.WithMessage("error.serviceUnavailable"), gecho.Send())
	case errors.Is(err, lib.ErrStorage):
		logger.Error("Storage failure", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		return gecho.InternalServerError(w, gecho.WithMessage(msg+".storage"), gecho.Send())
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
	return gecho.InternalServerError(w, gecho.Send())
}
