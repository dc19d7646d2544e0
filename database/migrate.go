package database

import (
	"context"
	"fmt"
	"svd_ambalaj_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

type tableDef struct {
	model       any
	foreignKeys []string
}

type indexDef struct {
	model   any
	name    string
	columns []string
}

// schemaTables is ordered so referenced tables exist before their dependents
var schemaTables = []tableDef{
	{model: (*tables.Category)(nil)},
	{model: (*tables.Product)(nil), foreignKeys: []string{`("category_id") REFERENCES "categories" ("id")`}},
	{model: (*tables.BulkPricingTier)(nil), foreignKeys: []string{`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`}},
	{model: (*tables.ProductImage)(nil), foreignKeys: []string{`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`}},
	{model: (*tables.Customer)(nil)},
	{model: (*tables.Order)(nil), foreignKeys: []string{`("customer_id") REFERENCES "customers" ("id")`}},
	{model: (*tables.OrderItem)(nil), foreignKeys: []string{`("order_id") REFERENCES "orders" ("id") ON DELETE CASCADE`}},
	{model: (*tables.MediaAsset)(nil)},
	{model: (*tables.LandingMedia)(nil)},
	{model: (*tables.LandingGallery)(nil), foreignKeys: []string{`("landing_id") REFERENCES "landing_media" ("id") ON DELETE CASCADE`}},
	{model: (*tables.LandingHighlight)(nil), foreignKeys: []string{`("landing_id") REFERENCES "landing_media" ("id") ON DELETE CASCADE`}},
	{model: (*tables.SampleRequest)(nil)},
}

var schemaIndexes = []indexDef{
	{model: (*tables.Product)(nil), name: "idx_products_category_id", columns: []string{"category_id"}},
	{model: (*tables.Product)(nil), name: "idx_products_created_at", columns: []string{"created_at"}},
	{model: (*tables.BulkPricingTier)(nil), name: "idx_product_bulk_pricing_product_id", columns: []string{"product_id"}},
	{model: (*tables.ProductImage)(nil), name: "idx_product_images_product_id", columns: []string{"product_id"}},
	{model: (*tables.Order)(nil), name: "idx_orders_created_at", columns: []string{"created_at"}},
	{model: (*tables.Order)(nil), name: "idx_orders_customer_id", columns: []string{"customer_id"}},
	{model: (*tables.OrderItem)(nil), name: "idx_order_items_order_id", columns: []string{"order_id"}},
	{model: (*tables.MediaAsset)(nil), name: "idx_media_assets_created_at", columns: []string{"created_at"}},
}

// Migrate creates missing tables and indexes. It never alters existing ones.
func Migrate(ctx context.Context, db *DB) error {
	for _, def := range schemaTables {
		q := db.NewCreateTable().Model(def.model).IfNotExists()
		for _, fk := range def.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", def.model, err)
		}
	}

	for _, idx := range schemaIndexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	db.logger.Debug("Database schema is up to date", gecho.Field("tables", len(schemaTables)))
	return nil
}
