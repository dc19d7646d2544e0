package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CatalogService owns categories and products together with their bulk pricing tiers and
// images. Tier and image sets belong to their product and are always replaced whole.
type CatalogService struct {
	logger *gecho.Logger
	db     *database.DB
	cache  *CacheService
	now    func() time.Time
}

func NewCatalogService(logger *gecho.Logger, db *database.DB, cache *CacheService) *CatalogService {
	return &CatalogService{
		logger: logger,
		db:     db,
		cache:  cache,
		now:    lib.Now,
	}
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------------------------------------------------------------------------------------
// Categories

func (cs *CatalogService) ListCategories(ctx context.Context) ([]structs.Category, error) {
	return cachedList(ctx, cs.cache, cs.logger, categoriesListKey, func() ([]structs.Category, error) {
		var rows []tables.Category
		err := cs.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
			return q.NewSelect().Model(&rows).Order("c.name ASC").Scan(ctx)
		})
		if err != nil {
			cs.logger.Error("Failed to list categories", gecho.Field("error", err))
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}

		categories := make([]structs.Category, 0, len(rows))
		for i := range rows {
			categories = append(categories, mapCategory(&rows[i]))
		}
		return categories, nil
	})
}

func (cs *CatalogService) GetCategoryByID(ctx context.Context, id string) (*structs.Category, error) {
	return cs.getCategory(ctx, "c.id = ?", strings.TrimSpace(id))
}

func (cs *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*structs.Category, error) {
	return cs.getCategory(ctx, "c.slug = ?", strings.TrimSpace(slug))
}

func (cs *CatalogService) getCategory(ctx context.Context, where string, arg string) (*structs.Category, error) {
	var row *tables.Category
	err := cs.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		var err error
		row, err = loadCategory(ctx, q, where, arg)
		return err
	})
	if err != nil {
		cs.logger.Error("Failed to fetch category", gecho.Field("error", err), gecho.Field("key", arg))
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	category := mapCategory(row)
	return &category, nil
}

// loadCategory returns nil without error when no row matches
func loadCategory(ctx context.Context, q bun.IDB, where string, args ...any) (*tables.Category, error) {
	row := new(tables.Category)
	err := q.NewSelect().Model(row).Where(where, args...).Limit(1).Scan(ctx)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *CatalogService) CreateCategory(ctx context.Context, payload structs.CategoryPayload) (*structs.Category, error) {
	startTime := time.Now()

	name := trimmed(payload.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", lib.ErrInvalidInput)
	}
	slug := trimmed(payload.Slug)
	if slug == "" {
		slug = lib.Slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: category slug could not be derived from %q", lib.ErrInvalidInput, name)
	}
	id := trimmed(payload.ID)
	if id == "" {
		id = slug
	}

	now := cs.now()
	row := &tables.Category{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: trimmed(payload.Description),
		Image:       trimmed(payload.Image),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := cs.db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureUnique(ctx, tx, (*tables.Category)(nil), "category", "id", id, ""); err != nil {
			return err
		}
		if err := ensureUnique(ctx, tx, (*tables.Category)(nil), "category", "slug", slug, ""); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return lib.MapDBError(err)
		}
		return nil
	})
	if err != nil {
		cs.logger.Warn("Failed to create category", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	cs.logger.Info("Category created", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))

	category := mapCategory(row)
	return &category, nil
}

// UpdateCategory applies the non-nil payload fields. The id is immutable.
func (cs *CatalogService) UpdateCategory(ctx context.Context, id string, payload structs.CategoryPayload) (*structs.Category, error) {
	id = strings.TrimSpace(id)

	row, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Category, error) {
		row, err := loadCategory(ctx, tx, "c.id = ?", id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: category %q", lib.ErrNotFound, id)
		}

		if name := trimmed(payload.Name); name != "" {
			row.Name = name
		}
		if slug := trimmed(payload.Slug); slug != "" && slug != row.Slug {
			if err := ensureUnique(ctx, tx, (*tables.Category)(nil), "category", "slug", slug, id); err != nil {
				return nil, err
			}
			row.Slug = slug
		}
		if payload.Description != nil {
			row.Description = trimmed(payload.Description)
		}
		if payload.Image != nil {
			row.Image = trimmed(payload.Image)
		}
		row.UpdatedAt = cs.now()

		_, err = tx.NewUpdate().
			Model(row).
			Column("name", "slug", "description", "image", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	category := mapCategory(row)
	return &category, nil
}

// DeleteCategory refuses to delete a category that products still reference
func (cs *CatalogService) DeleteCategory(ctx context.Context, id string) (*structs.Category, error) {
	id = strings.TrimSpace(id)

	row, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Category, error) {
		row, err := loadCategory(ctx, tx, "c.id = ?", id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: category %q", lib.ErrNotFound, id)
		}

		inUse, err := tx.NewSelect().Model((*tables.Product)(nil)).Where("category_id = ?", id).Count(ctx)
		if err != nil {
			return nil, err
		}
		if inUse > 0 {
			return nil, fmt.Errorf("%w: category %q is used by %d products", lib.ErrConflict, id, inUse)
		}

		if _, err := tx.NewDelete().Model(row).WherePK().Exec(ctx); err != nil {
			return nil, lib.MapDBError(err)
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	cs.logger.Info("Category deleted", gecho.Field("id", id))

	category := mapCategory(row)
	return &category, nil
}

// ---------------------------------------------------------------------------------------
// Products

// productQuery selects products with tiers by ascending minimum quantity and images by
// position
func productQuery(q bun.IDB, dest any) *bun.SelectQuery {
	return q.NewSelect().
		Model(dest).
		Relation("BulkPricing", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bp.min_quantity ASC", "bp.sort_order ASC")
		}).
		Relation("Images", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("pi.sort_order ASC")
		})
}

func loadProduct(ctx context.Context, q bun.IDB, where string, args ...any) (*tables.Product, error) {
	row := new(tables.Product)
	err := productQuery(q, row).Where(where, args...).Limit(1).Scan(ctx)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *CatalogService) ListProducts(ctx context.Context) ([]structs.Product, error) {
	return cachedList(ctx, cs.cache, cs.logger, productsListKey, func() ([]structs.Product, error) {
		return cs.listProducts(ctx, "", "")
	})
}

func (cs *CatalogService) ListProductsByCategory(ctx context.Context, categoryID string) ([]structs.Product, error) {
	categoryID = strings.TrimSpace(categoryID)
	key := fmt.Sprintf(productsByCategory, categoryID)
	return cachedList(ctx, cs.cache, cs.logger, key, func() ([]structs.Product, error) {
		return cs.listProducts(ctx, "p.category_id = ?", categoryID)
	})
}

func (cs *CatalogService) listProducts(ctx context.Context, where string, arg string) ([]structs.Product, error) {
	startTime := time.Now()

	var rows []tables.Product
	err := cs.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		query := productQuery(q, &rows).Order("p.created_at DESC", "p.id ASC")
		if where != "" {
			query = query.Where(where, arg)
		}
		return query.Scan(ctx)
	})
	if err != nil {
		cs.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("filter", arg),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make([]structs.Product, 0, len(rows))
	for i := range rows {
		products = append(products, mapProduct(&rows[i]))
	}

	cs.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return products, nil
}

func (cs *CatalogService) GetProductByID(ctx context.Context, id string) (*structs.Product, error) {
	id = strings.TrimSpace(id)
	return cachedOne(ctx, cs.cache, cs.logger, fmt.Sprintf(productByIDKey, id), func() (*structs.Product, error) {
		return cs.getProduct(ctx, "p.id = ?", id)
	})
}

func (cs *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*structs.Product, error) {
	slug = strings.TrimSpace(slug)
	return cachedOne(ctx, cs.cache, cs.logger, fmt.Sprintf(productBySlugKey, slug), func() (*structs.Product, error) {
		return cs.getProduct(ctx, "p.slug = ?", slug)
	})
}

func (cs *CatalogService) getProduct(ctx context.Context, where, arg string) (*structs.Product, error) {
	row, err := database.ExecuteWithResult(ctx, cs.db, func(ctx context.Context, q bun.IDB) (*tables.Product, error) {
		return loadProduct(ctx, q, where, arg)
	})
	if err != nil {
		cs.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("key", arg))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	product := mapProduct(row)
	return &product, nil
}

func (cs *CatalogService) CreateProduct(ctx context.Context, payload structs.ProductPayload) (*structs.Product, error) {
	startTime := time.Now()

	title := trimmed(payload.Title)
	categoryID := trimmed(payload.Category)
	if title == "" || categoryID == "" {
		return nil, fmt.Errorf("%w: product title and category are required", lib.ErrInvalidInput)
	}
	slug := trimmed(payload.Slug)
	if slug == "" {
		slug = lib.Slugify(title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: product slug could not be derived from %q", lib.ErrInvalidInput, title)
	}
	id := trimmed(payload.ID)
	if id == "" {
		id = slug
	}

	description := ""
	if payload.Description != nil {
		description = *payload.Description
	}

	now := cs.now()
	row := &tables.Product{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: description,
		Price:       lib.DecimalOrZero(payload.Price),
		CategoryID:  categoryID,
		Stock:       lib.IntOrZero(payload.Stock),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tiers := lib.NormalizeBulkPricing(payload.BulkPricing)
	images := lib.NormalizeImages(lib.FirstPresent(payload.Images, payload.Image))

	created, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		if err := ensureCategoryExists(ctx, tx, categoryID); err != nil {
			return nil, err
		}
		if err := ensureUnique(ctx, tx, (*tables.Product)(nil), "product", "id", id, ""); err != nil {
			return nil, err
		}
		if err := ensureUnique(ctx, tx, (*tables.Product)(nil), "product", "slug", slug, ""); err != nil {
			return nil, err
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return nil, lib.MapDBError(err)
		}
		if err := replaceProductChildren(ctx, tx, id, tiers, images); err != nil {
			return nil, err
		}
		return loadProduct(ctx, tx, "p.id = ?", id)
	})
	if err != nil {
		cs.logger.Warn("Failed to create product", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	cs.logger.Info("Product created",
		gecho.Field("id", id),
		gecho.Field("tiers", len(tiers)),
		gecho.Field("images", len(images)),
		gecho.Field("duration", time.Since(startTime)),
	)

	product := mapProduct(created)
	return &product, nil
}

// UpdateProduct applies the present payload fields. Tiers and images are replaced as whole
// sets, with the stored sets written back when the payload omits them.
func (cs *CatalogService) UpdateProduct(ctx context.Context, id string, payload structs.ProductPayload) (*structs.Product, error) {
	id = strings.TrimSpace(id)

	updated, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		row, err := loadProduct(ctx, tx, "p.id = ?", id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: product %q", lib.ErrNotFound, id)
		}

		tiers := make([]structs.BulkPricingTier, 0, len(row.BulkPricing))
		for _, t := range row.BulkPricing {
			tiers = append(tiers, structs.BulkPricingTier{MinQty: t.MinQuantity, Price: t.Price})
		}
		images := make([]string, 0, len(row.Images))
		for _, img := range row.Images {
			images = append(images, img.URL)
		}

		if title := trimmed(payload.Title); title != "" {
			row.Title = title
		}
		if slug := trimmed(payload.Slug); slug != "" && slug != row.Slug {
			if err := ensureUnique(ctx, tx, (*tables.Product)(nil), "product", "slug", slug, id); err != nil {
				return nil, err
			}
			row.Slug = slug
		}
		if payload.Description != nil {
			row.Description = *payload.Description
		}
		if payload.Price != nil {
			row.Price = lib.DecimalOrZero(payload.Price)
		}
		if categoryID := trimmed(payload.Category); categoryID != "" && categoryID != row.CategoryID {
			if err := ensureCategoryExists(ctx, tx, categoryID); err != nil {
				return nil, err
			}
			row.CategoryID = categoryID
		}
		if payload.Stock != nil {
			row.Stock = lib.IntOrZero(payload.Stock)
		}
		if payload.BulkPricing != nil {
			tiers = lib.NormalizeBulkPricing(payload.BulkPricing)
		}
		if raw := lib.FirstPresent(payload.Images, payload.Image); raw != nil {
			images = lib.NormalizeImages(raw)
		}
		row.UpdatedAt = cs.now()

		_, err = tx.NewUpdate().
			Model(row).
			Column("title", "slug", "description", "price", "category_id", "stock", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		if err := replaceProductChildren(ctx, tx, id, tiers, images); err != nil {
			return nil, err
		}
		return loadProduct(ctx, tx, "p.id = ?", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	cs.logger.Info("Product updated", gecho.Field("id", id))

	product := mapProduct(updated)
	return &product, nil
}

func (cs *CatalogService) DeleteProduct(ctx context.Context, id string) (*structs.Product, error) {
	id = strings.TrimSpace(id)

	deleted, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		row, err := loadProduct(ctx, tx, "p.id = ?", id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: product %q", lib.ErrNotFound, id)
		}
		if err := replaceProductChildren(ctx, tx, id, nil, nil); err != nil {
			return nil, err
		}
		if _, err := tx.NewDelete().Model((*tables.Product)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return nil, lib.MapDBError(err)
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	cs.cache.invalidateAsync(catalogKeyPrefix)
	cs.logger.Info("Product deleted", gecho.Field("id", id))

	product := mapProduct(deleted)
	return &product, nil
}

// replaceProductChildren deletes the product's tiers and images and inserts the given sets
func replaceProductChildren(ctx context.Context, tx bun.Tx, productID string, tiers []structs.BulkPricingTier, images []string) error {
	if _, err := tx.NewDelete().Model((*tables.BulkPricingTier)(nil)).Where("product_id = ?", productID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear bulk pricing: %w", err)
	}
	if _, err := tx.NewDelete().Model((*tables.ProductImage)(nil)).Where("product_id = ?", productID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear product images: %w", err)
	}

	if len(tiers) > 0 {
		rows := make([]tables.BulkPricingTier, 0, len(tiers))
		for i, t := range tiers {
			rows = append(rows, tables.BulkPricingTier{
				ID:          uuid.NewString(),
				ProductID:   productID,
				MinQuantity: t.MinQty,
				Price:       t.Price,
				SortOrder:   i,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert bulk pricing: %w", lib.MapDBError(err))
		}
	}

	if len(images) > 0 {
		rows := make([]tables.ProductImage, 0, len(images))
		for i, url := range images {
			rows = append(rows, tables.ProductImage{
				ID:        uuid.NewString(),
				ProductID: productID,
				URL:       url,
				SortOrder: i,
				IsPrimary: i == 0,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert product images: %w", lib.MapDBError(err))
		}
	}
	return nil
}

// ensureUnique fails with lib.ErrConflict when another row (id != exceptID) has column = value
func ensureUnique(ctx context.Context, q bun.IDB, model any, entity, column, value, exceptID string) error {
	query := q.NewSelect().Model(model).Where("? = ?", bun.Ident(column), value)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	exists, err := query.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check %s %s: %w", entity, column, err)
	}
	if exists {
		return fmt.Errorf("%w: a %s with %s %q already exists", lib.ErrConflict, entity, column, value)
	}
	return nil
}

func ensureCategoryExists(ctx context.Context, q bun.IDB, categoryID string) error {
	exists, err := q.NewSelect().Model((*tables.Category)(nil)).Where("id = ?", categoryID).Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: category %q does not exist", lib.ErrInvalidInput, categoryID)
	}
	return nil
}

// cachedList serves key from the cache, loading and storing it on a miss. Cache failures
// are logged and never fail the read.
func cachedList[T any](ctx context.Context, cache *CacheService, logger *gecho.Logger, key string, load func() ([]T, error)) ([]T, error) {
	var cached []T
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("Failed to read cache", gecho.Field("key", key), gecho.Field("error", err))
	}
	if hit {
		return cached, nil
	}

	values, err := load()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, values); err != nil {
		logger.Warn("Failed to write cache", gecho.Field("key", key), gecho.Field("error", err))
	}
	return values, nil
}

// cachedOne is cachedList for single entities; misses in the database are not cached
func cachedOne[T any](ctx context.Context, cache *CacheService, logger *gecho.Logger, key string, load func() (*T, error)) (*T, error) {
	cached := new(T)
	hit, err := cache.GetJSON(ctx, key, cached)
	if err != nil {
		logger.Warn("Failed to read cache", gecho.Field("key", key), gecho.Field("error", err))
	}
	if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil || value == nil {
		return value, err
	}
	if err := cache.SetJSON(ctx, key, value); err != nil {
		logger.Warn("Failed to write cache", gecho.Field("key", key), gecho.Field("error", err))
	}
	return value, nil
}
