package catalog

import (
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllProducts handles GET /products
func (crm *CatalogRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := crm.catalogService.ListProducts(r.Context())
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}
func (crm *CatalogRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := crm.catalogService.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	crm.sendProduct(w, product, err)
}

// FetchProductBySlug handles GET /products/slug/{slug}
func (crm *CatalogRoutesManager) FetchProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := crm.catalogService.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	crm.sendProduct(w, product, err)
}

func (crm *CatalogRoutesManager) sendProduct(w http.ResponseWriter, product *structs.Product, err error) {
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}
	if product == nil {
		gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

// CreateProduct handles POST /products
func (crm *CatalogRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.ProductPayload](r)
	if err != nil {
		crm.logger.Debug("Failed to decode product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.products.checkProductInformation"), gecho.Send())
		return
	}

	product, err := crm.catalogService.CreateProduct(r.Context(), *body)
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateProduct handles PUT /products/{id}
func (crm *CatalogRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.ProductPayload](r)
	if err != nil {
		crm.logger.Debug("Failed to decode product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.products.checkProductInformation"), gecho.Send())
		return
	}

	product, err := crm.catalogService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), *body)
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProduct handles DELETE /products/{id}
func (crm *CatalogRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, err := crm.catalogService.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.deleted"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
