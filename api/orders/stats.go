package orders

import (
	"net/http"
	"svd_ambalaj_server/handling"

	"github.com/MonkyMars/gecho"
)

// GetStatsOverview handles GET /stats/overview?from=&to=&status=&category=
func (orm *OrderRoutesManager) GetStatsOverview(w http.ResponseWriter, r *http.Request) {
	filters, err := handling.ParseStatsFilters(r)
	if err != nil {
		orm.logger.Debug("Invalid stats filters", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	overview, err := orm.orderService.GetStatsOverview(r.Context(), filters)
	if err != nil {
		handling.HandleError(err, "error.stats", orm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(overview), gecho.Send())
}
