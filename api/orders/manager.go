package orders

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.With(orm.mw.RateLimit()).Post("/orders", orm.CreateOrder)

	r.Group(func(r chi.Router) {
		r.Use(orm.mw.RequireAdmin)
		r.Get("/orders", orm.ListOrders)
		r.Get("/orders/{id}", orm.GetOrder)
		r.Put("/orders/{id}/status", orm.UpdateOrderStatus)
		r.Get("/stats/overview", orm.GetStatsOverview)
	})
}
