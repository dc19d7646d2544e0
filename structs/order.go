package structs

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	TaxNumber string `json:"taxNumber"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Notes     string `json:"notes"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Category  string          `json:"category,omitempty"`
}

type OrderTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Currency      string          `json:"currency"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	ShippingTotal decimal.Decimal `json:"shippingTotal"`
	Total         decimal.Decimal `json:"total"`
}

type Order struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Customer  Customer       `json:"customer"`
	Items     []OrderItem    `json:"items"`
	Totals    OrderTotals    `json:"totals"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type CustomerPayload struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TaxNumber    string `json:"taxNumber"`
	TaxNumberAlt string `json:"tax_number"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
}

// OrderItemPayload accepts the key spellings storefront carts have used over time.
type OrderItemPayload struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductIDAlt string `json:"product_id"`
	Title        string `json:"title"`
	Quantity     any    `json:"quantity"`
	Price        any    `json:"price"`
	UnitPrice    any    `json:"unitPrice"`
	UnitPriceAlt any    `json:"unit_price"`
	Subtotal     any    `json:"subtotal"`
}

type OrderTotalsPayload struct {
	Subtotal      any    `json:"subtotal"`
	Currency      string `json:"currency"`
	DiscountTotal any    `json:"discountTotal"`
	ShippingTotal any    `json:"shippingTotal"`
}

type OrderPayload struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Customer      CustomerPayload    `json:"customer"`
	Items         []OrderItemPayload `json:"items"`
	Totals        OrderTotalsPayload `json:"totals"`
	ShippingTotal any                `json:"shippingTotal"`
	DiscountTotal any                `json:"discountTotal"`
	Metadata      map[string]any     `json:"metadata"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// OrderFilters narrows ListOrders; zero values mean "no constraint".
type OrderFilters struct {
	From   *time.Time
	To     *time.Time
	ID     string
	Status string
}

type StatsFilters struct {
	From     *time.Time
	To       *time.Time
	Status   string
	Category string
}

type CategorySales struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type MonthlySales struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type StatsOverview struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	CategorySales     []CategorySales `json:"categorySales"`
	MonthlySales      []MonthlySales  `json:"monthlySales"`
}
