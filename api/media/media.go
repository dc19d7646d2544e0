package media

import (
	"errors"
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// multipart overhead allowed on top of the file size limit
const formOverhead = 1 << 20

func (mrm *MediaRoutesManager) ListMedia(w http.ResponseWriter, r *http.Request) {
	assets, err := mrm.mediaService.ListMedia(r.Context())
	if err != nil {
		handling.HandleError(err, "error.media", mrm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(assets), gecho.Send())
}

func (mrm *MediaRoutesManager) GetMedia(w http.ResponseWriter, r *http.Request) {
	asset, err := mrm.mediaService.GetMediaByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "error.media", mrm.logger, w)
		return
	}
	if asset == nil {
		gecho.NotFound(w, gecho.WithMessage("error.media.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(asset), gecho.Send())
}

// UploadMedia handles POST /media with a multipart "file" field
func (mrm *MediaRoutesManager) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, mrm.maxUpload+formOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			gecho.BadRequest(w, gecho.WithMessage("error.media.tooLarge"), gecho.Send())
			return
		}
		mrm.logger.Debug("Missing upload file", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.media.fileRequired"), gecho.Send())
		return
	}
	defer file.Close()

	asset, err := mrm.mediaService.Upload(r.Context(), services.UploadInput{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Body:         file,
	})
	if err != nil {
		handling.HandleError(err, "error.media", mrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.media.uploaded"),
		gecho.WithData(asset),
		gecho.Send(),
	)
}

func (mrm *MediaRoutesManager) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	asset, err := mrm.mediaService.DeleteMedia(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "error.media", mrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.media.deleted"),
		gecho.WithData(asset),
		gecho.Send(),
	)
}
