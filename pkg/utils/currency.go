package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencyPlaceholder is shown whenever a value is absent or not a number.
const currencyPlaceholder = "0,00"

var currencyPrinter = message.NewPrinter(language.Spanish)

// FormatCurrency formats an amount as a localized 2-decimal string,
// e.g. 20249 -> "20.249,00". NaN and infinities render the placeholder.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return currencyPlaceholder
	}
	return currencyPrinter.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// FormatCurrencyPtr is FormatCurrency for optional amounts; nil renders
// the placeholder.
func FormatCurrencyPtr(amount *float64) string {
	if amount == nil {
		return currencyPlaceholder
	}
	return FormatCurrency(*amount)
}
