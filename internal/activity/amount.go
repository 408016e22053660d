package activity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CoerceAmount converts an untyped sale amount from a request body into a
// non-negative decimal. Anything that is not a usable number, including nil,
// malformed strings, and negative values, collapses to zero so a bad payload
// can never shrink a shop's sales total.
func CoerceAmount(raw any) decimal.Decimal {
	var amount decimal.Decimal

	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case float64:
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	case decimal.Decimal:
		amount = v
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		amount = parsed
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		amount = parsed
	default:
		return decimal.Zero
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}
