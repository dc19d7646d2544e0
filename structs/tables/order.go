package tables

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	tableName struct{}  `bun:"table:customers,alias:cu"`
	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull,default:''" json:"name"`
	Company   string    `bun:"company,notnull,default:''" json:"company"`
	Email     string    `bun:"email,nullzero,unique" json:"email"` // NULL when absent, so anonymous rows never collide
	Phone     string    `bun:"phone,notnull,default:''" json:"phone"`
	TaxNumber string    `bun:"tax_number,notnull,default:''" json:"tax_number"`
	Address   string    `bun:"address,notnull,default:''" json:"address"`
	City      string    `bun:"city,notnull,default:''" json:"city"`
	Notes     string    `bun:"notes,notnull,default:''" json:"notes"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type Order struct {
	tableName     struct{}        `bun:"table:orders,alias:o"`
	ID            string          `bun:"id,pk" json:"id"`
	Status        string          `bun:"status,notnull,default:'pending'" json:"status"`
	CustomerID    string          `bun:"customer_id,notnull" json:"customer_id"`
	Subtotal      decimal.Decimal `bun:"subtotal,type:numeric(12,2),notnull" json:"subtotal"`
	ShippingTotal decimal.Decimal `bun:"shipping_total,type:numeric(12,2),notnull" json:"shipping_total"`
	DiscountTotal decimal.Decimal `bun:"discount_total,type:numeric(12,2),notnull" json:"discount_total"`
	Total         decimal.Decimal `bun:"total,type:numeric(12,2),notnull" json:"total"`
	Currency      string          `bun:"currency,notnull,default:'TRY'" json:"currency"`
	Metadata      map[string]any  `bun:"metadata,type:jsonb" json:"metadata"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Customer *Customer   `bun:"rel:belongs-to,join:customer_id=id" json:"customer,omitempty"`
	Items    []OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

// OrderItem snapshots title and unit price at checkout; product_id is not a foreign key
// so orders outlive product deletion.
type OrderItem struct {
	tableName struct{}        `bun:"table:order_items,alias:oi"`
	ID        string          `bun:"id,pk" json:"id"`
	OrderID   string          `bun:"order_id,notnull" json:"order_id"`
	ProductID string          `bun:"product_id,notnull,default:''" json:"product_id"`
	Title     string          `bun:"title,notnull,default:''" json:"title"`
	Quantity  int             `bun:"quantity,notnull" json:"quantity"`
	UnitPrice decimal.Decimal `bun:"unit_price,type:numeric(12,2),notnull" json:"unit_price"`
	Subtotal  decimal.Decimal `bun:"subtotal,type:numeric(12,2),notnull" json:"subtotal"`
	SortOrder int             `bun:"sort_order,notnull" json:"sort_order"`
}
