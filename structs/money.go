package structs

import "github.com/shopspring/decimal"

func init() {
	// Prices cross the API as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
