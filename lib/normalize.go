package lib

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"svd_ambalaj_server/structs"

	"github.com/shopspring/decimal"
)

// minQtyKeys lists the spellings of a tier's minimum quantity seen in stored and
// submitted payloads, in lookup priority.
var minQtyKeys = []string{"minQty", "minqty", "min_quantity", "minquantity", "min_qty"}

var tierPriceKeys = []string{"price", "unitPrice", "unit_price"}

// ToDecimal coerces a decoded JSON value into a decimal. The boolean is false for nil,
// empty strings, non-numeric strings and non-finite floats.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return ToDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		return ToDecimal(n.String())
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// DecimalOrZero is ToDecimal with the zero fallback used for monetary fields.
func DecimalOrZero(v any) decimal.Decimal {
	d, _ := ToDecimal(v)
	return d
}

// ToInt truncates a coerced numeric value toward zero.
func ToInt(v any) (int, bool) {
	d, ok := ToDecimal(v)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

func IntOrZero(v any) int {
	n, _ := ToInt(v)
	return n
}

// FirstPresent returns the first non-nil value, for payload fields with key aliases.
func FirstPresent(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// ToText renders a free-text payload value; numbers keep their JSON spelling.
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// NormalizeBulkPricing accepts a single tier object, a list of tiers or a JSON string of
// either. A missing minQty or price counts as 0; a present value that is not a finite
// number drops the tier. The result is sorted ascending by MinQty, ties keep input order.
func NormalizeBulkPricing(input any) []structs.BulkPricingTier {
	tiers := make([]structs.BulkPricingTier, 0)

	var entries []any
	switch v := input.(type) {
	case nil:
		return tiers
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return tiers
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return tiers
		}
		return NormalizeBulkPricing(decoded)
	case []any:
		entries = v
	case map[string]any:
		entries = []any{v}
	case []structs.BulkPricingTier:
		for _, t := range v {
			tiers = append(tiers, t)
		}
		sortTiers(tiers)
		return tiers
	default:
		return tiers
	}

	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		minQty, ok := tierField(obj, minQtyKeys)
		if !ok {
			continue
		}
		price, ok := tierField(obj, tierPriceKeys)
		if !ok {
			continue
		}
		tiers = append(tiers, structs.BulkPricingTier{MinQty: int(minQty.IntPart()), Price: price})
	}

	sortTiers(tiers)
	return tiers
}

func tierField(obj map[string]any, keys []string) (decimal.Decimal, bool) {
	for _, key := range keys {
		if raw, exists := obj[key]; exists && raw != nil {
			return ToDecimal(raw)
		}
	}
	return decimal.Zero, true
}

func sortTiers(tiers []structs.BulkPricingTier) {
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].MinQty < tiers[j].MinQty })
}

// NormalizeImages resolves a list, a JSON-encoded list, a comma-separated string or a
// single URL into trimmed, non-empty strings. Anything else yields an empty list.
func NormalizeImages(input any) []string {
	images := make([]string, 0)

	switch v := input.(type) {
	case nil:
		return images
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				images = append(images, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					images = append(images, s)
				}
			}
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return images
		}
		if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "\"") {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return NormalizeImages(decoded)
			}
		}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				images = append(images, part)
			}
		}
	}
	return images
}
