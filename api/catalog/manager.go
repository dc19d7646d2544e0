package catalog

import (
	"svd_ambalaj_server/api/middleware"
	"svd_ambalaj_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	mw             *middleware.Middleware
}

func NewCatalogRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	mw *middleware.Middleware,
) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		mw:             mw,
	}
}

func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", crm.FetchAllProducts)
	r.Get("/products/{id}", crm.FetchProductByID)
	r.Get("/products/slug/{slug}", crm.FetchProductBySlug)

	r.Get("/categories", crm.FetchAllCategories)
	r.Get("/categories/{id}", crm.FetchCategoryByID)
	r.Get("/categories/slug/{slug}", crm.FetchCategoryBySlug)
	r.Get("/categories/{id}/products", crm.FetchCategoryProducts)

	r.Group(func(r chi.Router) {
		r.Use(crm.mw.RequireAdmin)
		r.Post("/products", crm.CreateProduct)
		r.Put("/products/{id}", crm.UpdateProduct)
		r.Delete("/products/{id}", crm.DeleteProduct)

		r.Post("/categories", crm.CreateCategory)
		r.Put("/categories/{id}", crm.UpdateCategory)
		r.Delete("/categories/{id}", crm.DeleteCategory)
	})
}
