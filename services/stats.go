package services

import (
	"slices"
	"strings"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"time"

	"github.com/shopspring/decimal"
)

// uncategorized is the category bucket for items whose product is unknown or has no category
const uncategorized = "other"

// pendingStatuses lists the stored status spellings counted as pending. Orders created by
// the Turkish storefront used "beklemede".
var pendingStatuses = map[string]struct{}{
	"pending":   {},
	"beklemede": {},
}

func isPendingStatus(status string) bool {
	_, ok := pendingStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// isAllFilter reports whether a status or category filter value means "no constraint"
func isAllFilter(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all")
}

// ComputeStatsOverview aggregates already filtered orders. Revenue is the order subtotal
// (before shipping and discount); category sales sum item subtotals and keep the order in
// which categories first appear; months are UTC YYYY-MM in ascending order.
func ComputeStatsOverview(orders []structs.Order, category string) structs.StatsOverview {
	overview := structs.StatsOverview{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		CategorySales:     make([]structs.CategorySales, 0),
		MonthlySales:      make([]structs.MonthlySales, 0),
	}

	filterCategory := !isAllFilter(category)
	category = strings.TrimSpace(category)

	categoryIndex := make(map[string]int)
	monthly := make(map[string]decimal.Decimal)
	months := make([]string, 0)

	for _, order := range orders {
		overview.TotalOrders++
		overview.TotalRevenue = overview.TotalRevenue.Add(order.Totals.Subtotal)
		if isPendingStatus(order.Status) {
			overview.PendingOrders++
		}

		for _, item := range order.Items {
			name := item.Category
			if name == "" {
				name = uncategorized
			}
			if filterCategory && name != category {
				continue
			}
			idx, seen := categoryIndex[name]
			if !seen {
				idx = len(overview.CategorySales)
				categoryIndex[name] = idx
				overview.CategorySales = append(overview.CategorySales, structs.CategorySales{
					Category: name,
					Revenue:  decimal.Zero,
				})
			}
			overview.CategorySales[idx].Revenue = overview.CategorySales[idx].Revenue.Add(item.Subtotal)
		}

		month := monthOf(order.CreatedAt)
		if month == "" {
			continue
		}
		if _, seen := monthly[month]; !seen {
			months = append(months, month)
			monthly[month] = decimal.Zero
		}
		monthly[month] = monthly[month].Add(order.Totals.Subtotal)
	}

	if overview.TotalOrders > 0 {
		overview.AverageOrderValue = overview.TotalRevenue.Div(decimal.NewFromInt(int64(overview.TotalOrders)))
	}

	slices.Sort(months)
	for _, m := range months {
		overview.MonthlySales = append(overview.MonthlySales, structs.MonthlySales{Month: m, Revenue: monthly[m]})
	}
	return overview
}

// monthOf returns the UTC YYYY-MM of a formatted timestamp, "" when it does not parse
func monthOf(timestamp string) string {
	t, err := time.Parse(lib.TimestampLayout, timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return ""
		}
	}
	return t.UTC().Format("2006-01")
}
