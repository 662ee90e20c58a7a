package checkout

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a decimal-unit amount into provider minor units
// (cents). Rounding is half away from zero, so 19.995 becomes 2000; this is
// the one rounding rule used everywhere an amount crosses into the provider.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}
