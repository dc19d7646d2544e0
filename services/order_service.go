package services

import (
	"context"
	"fmt"
	"strings"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const defaultCurrency = "TRY"

type OrderService struct {
	logger   *gecho.Logger
	db       *database.DB
	notifier Notifier
	now      func() time.Time
}

func NewOrderService(logger *gecho.Logger, db *database.DB, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &OrderService{
		logger:   logger,
		db:       db,
		notifier: notifier,
		now:      lib.Now,
	}
}

// orderQuery selects orders with their customer and items in checkout order
func orderQuery(q bun.IDB, dest any) *bun.SelectQuery {
	return q.NewSelect().
		Model(dest).
		Relation("Customer").
		Relation("Items", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("oi.sort_order ASC", "oi.id ASC")
		})
}

func applyOrderFilters(query *bun.SelectQuery, filters structs.OrderFilters) *bun.SelectQuery {
	if filters.From != nil {
		query = query.Where("o.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("o.created_at <= ?", *filters.To)
	}
	if id := strings.TrimSpace(filters.ID); id != "" {
		query = query.Where("o.id = ?", id)
	}
	if !isAllFilter(filters.Status) {
		query = query.Where("lower(o.status) = ?", strings.ToLower(strings.TrimSpace(filters.Status)))
	}
	return query
}

// ListOrders returns the matching orders, newest first. Items carry the current category of
// their product.
func (os *OrderService) ListOrders(ctx context.Context, filters structs.OrderFilters) ([]structs.Order, error) {
	startTime := time.Now()

	var rows []tables.Order
	var categories map[string]string
	err := os.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		query := applyOrderFilters(orderQuery(q, &rows), filters).Order("o.created_at DESC", "o.id DESC")
		if err := query.Scan(ctx); err != nil {
			return err
		}
		categories = os.productCategories(ctx, q, rows)
		return nil
	})
	if err != nil {
		os.logger.Error("Failed to list orders", gecho.Field("error", err), gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]structs.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, mapOrder(&rows[i], categories))
	}

	os.logger.Debug("Orders fetched successfully",
		gecho.Field("count", len(orders)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return orders, nil
}

// productCategories looks up category ids for every product referenced by rows. A failed
// lookup is logged and leaves every item uncategorized.
func (os *OrderService) productCategories(ctx context.Context, q bun.IDB, rows []tables.Order) map[string]string {
	categories := make(map[string]string)

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, item := range row.Items {
			if item.ProductID == "" {
				continue
			}
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return categories
	}

	var products []tables.Product
	err := q.NewSelect().
		Model(&products).
		Column("id", "category_id").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		os.logger.Warn("Failed to look up product categories", gecho.Field("error", err), gecho.Field("products", len(ids)))
		return categories
	}
	for _, p := range products {
		categories[p.ID] = p.CategoryID
	}
	return categories
}

func (os *OrderService) GetOrderByID(ctx context.Context, id string) (*structs.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	orders, err := os.ListOrders(ctx, structs.OrderFilters{ID: id})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// CreateOrder upserts the customer by e-mail and stores the order with its items in one
// transaction. Totals missing from the payload are derived from the items.
func (os *OrderService) CreateOrder(ctx context.Context, payload structs.OrderPayload) (*structs.Order, error) {
	startTime := time.Now()

	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", lib.ErrInvalidInput)
	}
	customer := normalizeCustomer(payload.Customer)
	if customer.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", lib.ErrInvalidInput)
	}

	now := os.now()
	customer.ID = uuid.NewString()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	order := &tables.Order{
		ID:        strings.TrimSpace(payload.ID),
		Status:    strings.ToLower(strings.TrimSpace(payload.Status)),
		Currency:  strings.TrimSpace(payload.Totals.Currency),
		Metadata:  payload.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if order.ID == "" {
		order.ID = lib.GenerateOrderID(now)
	}
	if order.Status == "" {
		order.Status = "pending"
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}
	if order.Metadata == nil {
		order.Metadata = map[string]any{}
	}

	items, itemsTotal := buildOrderItems(order.ID, payload.Items)
	if subtotal, ok := lib.ToDecimal(payload.Totals.Subtotal); ok {
		order.Subtotal = subtotal
	} else {
		order.Subtotal = itemsTotal
	}
	order.ShippingTotal = lib.DecimalOrZero(lib.FirstPresent(payload.Totals.ShippingTotal, payload.ShippingTotal))
	order.DiscountTotal = lib.DecimalOrZero(lib.FirstPresent(payload.Totals.DiscountTotal, payload.DiscountTotal))
	order.Total = order.Subtotal.Add(order.ShippingTotal).Sub(order.DiscountTotal)

	err := os.db.RunInTransaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		customerID, err := upsertCustomer(ctx, tx, customer)
		if err != nil {
			return err
		}
		order.CustomerID = customerID

		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert order: %w", lib.MapDBError(err))
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert order items: %w", lib.MapDBError(err))
		}
		return nil
	})
	if err != nil {
		os.logger.Warn("Failed to create order", gecho.Field("error", err), gecho.Field("order_id", order.ID))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := os.GetOrderByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: order %q vanished after insert", lib.ErrNotFound, order.ID)
	}

	os.logger.Info("Order created",
		gecho.Field("order_id", order.ID),
		gecho.Field("items", len(items)),
		gecho.Field("total", order.Total.String()),
		gecho.Field("duration", time.Since(startTime)),
	)
	os.notifier.OrderCreated(*created)

	return created, nil
}

func normalizeCustomer(p structs.CustomerPayload) *tables.Customer {
	taxNumber := strings.TrimSpace(p.TaxNumber)
	if taxNumber == "" {
		taxNumber = strings.TrimSpace(p.TaxNumberAlt)
	}
	return &tables.Customer{
		Name:      strings.TrimSpace(p.Name),
		Company:   strings.TrimSpace(p.Company),
		Email:     strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:     strings.TrimSpace(p.Phone),
		TaxNumber: taxNumber,
		Address:   strings.TrimSpace(p.Address),
		City:      strings.TrimSpace(p.City),
		Notes:     strings.TrimSpace(p.Notes),
	}
}

// buildOrderItems coerces item payloads and returns them with the sum of their subtotals
func buildOrderItems(orderID string, payload []structs.OrderItemPayload) ([]tables.OrderItem, decimal.Decimal) {
	items := make([]tables.OrderItem, 0, len(payload))
	total := decimal.Zero

	for i, it := range payload {
		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			productID = strings.TrimSpace(it.ID)
		}
		if productID == "" {
			productID = strings.TrimSpace(it.ProductIDAlt)
		}

		quantity := lib.IntOrZero(it.Quantity)
		unitPrice := lib.DecimalOrZero(lib.FirstPresent(it.UnitPrice, it.Price, it.UnitPriceAlt))
		subtotal, ok := lib.ToDecimal(it.Subtotal)
		if !ok {
			subtotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		}
		total = total.Add(subtotal)

		items = append(items, tables.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: productID,
			Title:     strings.TrimSpace(it.Title),
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
			SortOrder: i,
		})
	}
	return items, total
}

// upsertCustomer inserts the customer, updating the stored row when the e-mail is already
// known. Customers without an e-mail always get a new row.
func upsertCustomer(ctx context.Context, tx bun.Tx, customer *tables.Customer) (string, error) {
	query := tx.NewInsert().Model(customer)
	if customer.Email != "" {
		query = query.
			On("CONFLICT (email) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("company = EXCLUDED.company").
			Set("phone = EXCLUDED.phone").
			Set("tax_number = EXCLUDED.tax_number").
			Set("address = EXCLUDED.address").
			Set("city = EXCLUDED.city").
			Set("notes = EXCLUDED.notes").
			Set("updated_at = EXCLUDED.updated_at")
	}
	if _, err := query.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to upsert customer: %w", lib.MapDBError(err))
	}
	if customer.Email == "" {
		return customer.ID, nil
	}

	// On conflict the stored id wins over the generated one
	var id string
	err := tx.NewSelect().
		Model((*tables.Customer)(nil)).
		Column("id").
		Where("email = ?", customer.Email).
		Scan(ctx, &id)
	if err != nil {
		return "", fmt.Errorf("failed to resolve customer id: %w", err)
	}
	return id, nil
}

// UpdateOrderStatus stores the lowercased status. Any value is accepted.
func (os *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*structs.Order, error) {
	id = strings.TrimSpace(id)
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return nil, fmt.Errorf("%w: status value is required", lib.ErrInvalidInput)
	}

	err := os.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		res, err := q.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", os.now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return lib.MapDBError(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order %q", lib.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	os.logger.Info("Order status updated", gecho.Field("order_id", id), gecho.Field("status", status))
	order, err := os.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %q", lib.ErrNotFound, id)
	}
	return order, nil
}

// GetStatsOverview aggregates the orders matching the date and status filters
func (os *OrderService) GetStatsOverview(ctx context.Context, filters structs.StatsFilters) (*structs.StatsOverview, error) {
	orders, err := os.ListOrders(ctx, structs.OrderFilters{
		From:   filters.From,
		To:     filters.To,
		Status: filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats overview: %w", err)
	}
	overview := ComputeStatsOverview(orders, filters.Category)
	return &overview, nil
}
