package catalog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	for _, p := range Products() {
		byID, ok := GetProductByID(p.ID)
		require.True(t, ok, "product %s missing by id", p.ID)

		byPrice, ok := GetProductByPriceID(byID.PriceID)
		require.True(t, ok, "product %s missing by price id", p.ID)
		assert.Equal(t, p, byPrice)
	}
}

func TestLookupAbsent(t *testing.T) {
	_, ok := GetProductByID("prod_does_not_exist")
	assert.False(t, ok)

	_, ok = GetProductByPriceID("price_does_not_exist")
	assert.False(t, ok)
}

func TestProductsReturnsCopy(t *testing.T) {
	a := Products()
	require.NotEmpty(t, a)
	a[0].Name = "mutated"

	b := Products()
	assert.NotEqual(t, "mutated", b[0].Name)
}

func TestFormatPriceEUR(t *testing.T) {
	got := FormatPrice(3550.00, "EUR")

	assert.Contains(t, got, "€")
	assert.Contains(t, got, "3,550.00")
}

func TestFormatPriceTwoDecimals(t *testing.T) {
	decimals := regexp.MustCompile(`\.\d{2}$`)

	for _, tc := range []struct {
		amount   float64
		currency string
	}{
		{11.49, "EUR"},
		{120.00, "USD"},
		{0.10, "USD"},
	} {
		got := FormatPrice(tc.amount, tc.currency)
		assert.Regexp(t, decimals, strings.TrimSpace(got), "FormatPrice(%v, %s) = %q", tc.amount, tc.currency, got)
	}
}

func TestFormatPriceUnknownCurrency(t *testing.T) {
	assert.Equal(t, "ZZZ 12.30", FormatPrice(12.3, "zzz"))
}

func TestFormatMinorUnits(t *testing.T) {
	got := FormatMinorUnits(1999, "EUR")

	assert.Contains(t, got, "19.99")
}
