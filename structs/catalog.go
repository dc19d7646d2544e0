package structs

import "github.com/shopspring/decimal"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type BulkPricingTier struct {
	MinQty int             `json:"minQty"`
	Price  decimal.Decimal `json:"price"`
}

type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	BulkPricing []BulkPricingTier `json:"bulkPricing"`
	Category    string            `json:"category"`
	Images      []string          `json:"images"`
	Stock       int               `json:"stock"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// CategoryPayload is the admin input for category create/update. Nil fields keep the stored
// value on update.
type CategoryPayload struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// ProductPayload is deliberately loose: numbers may arrive as strings, bulk pricing as an
// object or a list, images as a list or a string. Normalization happens in lib.
type ProductPayload struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Price       any     `json:"price"`
	BulkPricing any     `json:"bulkPricing"`
	Category    *string `json:"category"`
	Images      any     `json:"images"`
	Image       any     `json:"image"`
	Stock       any     `json:"stock"`
}
