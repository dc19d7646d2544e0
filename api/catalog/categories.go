package catalog

import (
	"net/http"
	"svd_ambalaj_server/handling"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (crm *CatalogRoutesManager) FetchAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(categories), gecho.Send())
}

func (crm *CatalogRoutesManager) FetchCategoryByID(w http.ResponseWriter, r *http.Request) {
	category, err := crm.catalogService.GetCategoryByID(r.Context(), chi.URLParam(r, "id"))
	crm.sendCategory(w, category, err)
}

func (crm *CatalogRoutesManager) FetchCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := crm.catalogService.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	crm.sendCategory(w, category, err)
}

func (crm *CatalogRoutesManager) sendCategory(w http.ResponseWriter, category *structs.Category, err error) {
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}
	if category == nil {
		gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(category), gecho.Send())
}

// FetchCategoryProducts handles GET /categories/{id}/products. The path value is resolved
// by slug first and by id as a fallback.
func (crm *CatalogRoutesManager) FetchCategoryProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "id")

	category, err := crm.catalogService.GetCategoryBySlug(ctx, key)
	if err == nil && category == nil {
		category, err = crm.catalogService.GetCategoryByID(ctx, key)
	}
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}
	if category == nil {
		gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
		return
	}

	products, err := crm.catalogService.ListProductsByCategory(ctx, category.ID)
	if err != nil {
		handling.HandleError(err, "error.products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"category": category,
			"products": products,
		}),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.CategoryPayload](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalid"), gecho.Send())
		return
	}

	category, err := crm.catalogService.CreateCategory(r.Context(), *body)
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.categories.created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.DecodeBody[structs.CategoryPayload](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalid"), gecho.Send())
		return
	}

	category, err := crm.catalogService.UpdateCategory(r.Context(), chi.URLParam(r, "id"), *body)
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.categories.updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	category, err := crm.catalogService.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "error.categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.categories.deleted"),
		gecho.WithData(category),
		gecho.Send(),
	)
}
