package tables

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	tableName   struct{}  `bun:"table:categories,alias:c"`
	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Description string    `bun:"description,notnull,default:''" json:"description"`
	Image       string    `bun:"image,notnull,default:''" json:"image"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type Product struct {
	tableName   struct{}          `bun:"table:products,alias:p"`
	ID          string            `bun:"id,pk" json:"id"`
	Title       string            `bun:"title,notnull" json:"title"`
	Slug        string            `bun:"slug,notnull,unique" json:"slug"`
	Description string            `bun:"description,notnull,default:''" json:"description"`
	Price       decimal.Decimal   `bun:"price,type:numeric(12,2),notnull" json:"price"`
	CategoryID  string            `bun:"category_id,notnull" json:"category_id"`
	Stock       int               `bun:"stock,notnull,default:0" json:"stock"`
	CreatedAt   time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	BulkPricing []BulkPricingTier `bun:"rel:has-many,join:id=product_id" json:"bulk_pricing,omitempty"`
	Images      []ProductImage    `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
}

// BulkPricingTier is a price break owned by a product; rows are replaced as a set.
type BulkPricingTier struct {
	tableName   struct{}        `bun:"table:product_bulk_pricing,alias:bp"`
	ID          string          `bun:"id,pk" json:"id"`
	ProductID   string          `bun:"product_id,notnull" json:"product_id"`
	MinQuantity int             `bun:"min_quantity,notnull" json:"min_quantity"`
	Price       decimal.Decimal `bun:"price,type:numeric(12,2),notnull" json:"price"`
	SortOrder   int             `bun:"sort_order,notnull" json:"sort_order"`
}

// ProductImage represents an image for a product
type ProductImage struct {
	tableName struct{} `bun:"table:product_images,alias:pi"`
	ID        string   `bun:"id,pk" json:"id"`
	ProductID string   `bun:"product_id,notnull" json:"product_id"`
	URL       string   `bun:"url,notnull" json:"url"`
	SortOrder int      `bun:"sort_order,notnull" json:"sort_order"`
	IsPrimary bool     `bun:"is_primary,notnull" json:"is_primary"`
}
