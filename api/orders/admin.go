package orders

import (
	"errors"
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ListOrders handles GET /orders?from=&to=&id=&status=
func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	filters, err := handling.ParseOrderFilters(r)
	if err != nil {
		orm.logger.Debug("Invalid order filters", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	orders, err := orm.orderService.ListOrders(r.Context(), filters)
	if err != nil {
		handling.HandleError(err, "error.orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"count":  len(orders),
		}),
		gecho.Send(),
	)
}

// GetOrder handles GET /orders/{id}
func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := orm.orderService.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "error.orders", orm.logger, w)
		return
	}
	if order == nil {
		gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(order), gecho.Send())
}

// UpdateOrderStatus handles PUT /orders/{id}/status
func (orm *OrderRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderStatusRequest](r)
	if err != nil {
		var ve *lib.ValidationError
		if errors.As(err, &ve) {
			gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidStatus"), gecho.WithData(ve), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidRequestBody"), gecho.Send())
		return
	}

	order, err := orm.orderService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		handling.HandleError(err, "error.orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.orders.statusUpdated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
