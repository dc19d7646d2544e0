package lib

import (
	"encoding/json"
	"math"
	"svd_ambalaj_server/structs"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func tier(minQty int, price string) structs.BulkPricingTier {
	return structs.BulkPricingTier{MinQty: minQty, Price: decimal.RequireFromString(price)}
}

func assertTiers(t *testing.T, want, got []structs.BulkPricingTier) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].MinQty, got[i].MinQty, "tier %d minQty", i)
		assert.True(t, want[i].Price.Equal(got[i].Price), "tier %d price: want %s got %s", i, want[i].Price, got[i].Price)
	}
}

func TestNormalizeBulkPricing(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []structs.BulkPricingTier
	}{
		{"nil", nil, []structs.BulkPricingTier{}},
		{"empty string", "  ", []structs.BulkPricingTier{}},
		{
			"list sorted ascending",
			decodeJSON(t, `[{"minQty":10,"price":5},{"minQty":5,"price":7}]`),
			[]structs.BulkPricingTier{tier(5, "7"), tier(10, "5")},
		},
		{
			"single object",
			decodeJSON(t, `{"min_quantity":100,"price":"2.50"}`),
			[]structs.BulkPricingTier{tier(100, "2.5")},
		},
		{
			"key aliases",
			decodeJSON(t, `[{"minqty":3,"price":1},{"minquantity":2,"unit_price":2},{"min_qty":1,"price":3}]`),
			[]structs.BulkPricingTier{tier(1, "3"), tier(2, "2"), tier(3, "1")},
		},
		{
			"non numeric entries dropped",
			decodeJSON(t, `[{"minQty":"abc","price":1},{"minQty":4,"price":"n/a"},{"minQty":"6","price":"1.25"}]`),
			[]structs.BulkPricingTier{tier(6, "1.25")},
		},
		{
			"json string",
			`[{"minQty":20,"price":4},{"minQty":1,"price":9}]`,
			[]structs.BulkPricingTier{tier(1, "9"), tier(20, "4")},
		},
		{
			"non objects ignored",
			decodeJSON(t, `[1, "x", null, {"minQty":2,"price":2}]`),
			[]structs.BulkPricingTier{tier(2, "2")},
		},
		{"number is not a tier", 5.0, []structs.BulkPricingTier{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTiers(t, tt.want, NormalizeBulkPricing(tt.input))
		})
	}
}

func TestNormalizeBulkPricingSortedAndFinite(t *testing.T) {
	input := []any{
		map[string]any{"minQty": 50.0, "price": 1.0},
		map[string]any{"minQty": math.Inf(1), "price": 1.0},
		map[string]any{"minQty": 1.0, "price": math.NaN()},
		map[string]any{"minQty": 7.0, "price": 3.0},
		map[string]any{"minQty": 7.0, "price": 2.0},
		map[string]any{"minQty": -1.0, "price": 4.0},
	}

	got := NormalizeBulkPricing(input)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].MinQty, got[i].MinQty)
	}
	// equal minQty keeps submission order
	assert.True(t, got[1].Price.Equal(decimal.NewFromInt(3)))
	assert.True(t, got[2].Price.Equal(decimal.NewFromInt(2)))
}

func TestNormalizeImages(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"list", decodeJSON(t, `["/a.png", "", "  /b.png ", 3]`), []string{"/a.png", "/b.png"}},
		{"json string", `["/a.png","/b.png"]`, []string{"/a.png", "/b.png"}},
		{"comma separated", "/a.png, /b.png,,", []string{"/a.png", "/b.png"}},
		{"single", " https://cdn.example.com/x.jpg ", []string{"https://cdn.example.com/x.jpg"}},
		{"json encoded single string", `"/only.png"`, []string{"/only.png"}},
		{"typed slice", []string{"/a.png", " "}, []string{"/a.png"}},
		{"object", map[string]any{"url": "/a.png"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeImages(tt.input))
		})
	}
}

func TestToDecimal(t *testing.T) {
	d, ok := ToDecimal("12.50")
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	_, ok = ToDecimal("twelve")
	assert.False(t, ok)
	_, ok = ToDecimal(math.NaN())
	assert.False(t, ok)
	_, ok = ToDecimal(nil)
	assert.False(t, ok)

	assert.True(t, DecimalOrZero(map[string]any{}).IsZero())
	assert.Equal(t, 3, IntOrZero(3.9))
	assert.Equal(t, 0, IntOrZero("x"))
	assert.Equal(t, 42, IntOrZero(json.Number("42")))
}

func TestToText(t *testing.T) {
	assert.Equal(t, "", ToText(nil))
	assert.Equal(t, "2 rolls", ToText(" 2 rolls "))
	assert.Equal(t, "500", ToText(500.0))
	assert.Equal(t, "1.5", ToText(1.5))
}
