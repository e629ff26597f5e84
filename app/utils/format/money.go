package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

const DefaultSymbol = "$"

// Money renders an amount for display, e.g. "$1,234.50". Stored and
// computed values stay decimal; this is presentation only.
func Money(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoney(amount)
}

// Amount renders a decimal with exactly two places, the wire format for
// prices and totals.
func Amount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
