package orders

import (
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder handles POST /orders from the storefront checkout
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.OrderPayload](r)
	if err != nil {
		orm.logger.Debug("Failed to decode order body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidRequestBody"), gecho.Send())
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), *body)
	if err != nil {
		handling.HandleError(err, "error.orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.orders.created"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
