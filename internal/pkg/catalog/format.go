package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a decimal-unit amount as a localized currency string,
// e.g. FormatPrice(3550, "EUR") -> "€ 3,550.00". Unknown currency codes fall
// back to "<CODE> <amount>".
func FormatPrice(amount float64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return fmt.Sprintf("%s %.2f", strings.ToUpper(strings.TrimSpace(code)), amount)
	}
	return pricePrinter.Sprint(currency.NarrowSymbol(unit.Amount(amount)))
}

// FormatMinorUnits renders a provider-recorded minor-unit total (cents) the
// same way FormatPrice renders catalog prices.
func FormatMinorUnits(amount int64, code string) string {
	return FormatPrice(float64(amount)/100, code)
}
