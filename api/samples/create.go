package samples

import (
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

func (srm *SampleRoutesManager) CreateSampleRequest(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.SamplePayload](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.samples.invalidRequestBody"), gecho.Send())
		return
	}

	sample, err := srm.sampleService.CreateSampleRequest(r.Context(), *body)
	if err != nil {
		handling.HandleError(err, "error.samples", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.samples.created"),
		gecho.WithData(sample),
		gecho.Send(),
	)
}
