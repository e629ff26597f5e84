package services

import (
	"github.com/shopspring/decimal"
)

// ShippingPolicy prices delivery for a cart subtotal and line count.
type ShippingPolicy interface {
	Cost(subtotal decimal.Decimal, lines int) decimal.Decimal
}

// FlatShipping charges Fee for any non-empty cart.
type FlatShipping struct {
	Fee decimal.Decimal
}

func NewFlatShipping(fee decimal.Decimal) FlatShipping {
	return FlatShipping{Fee: fee.Round(2)}
}

func (f FlatShipping) Cost(subtotal decimal.Decimal, lines int) decimal.Decimal {
	if lines == 0 {
		return decimal.Zero
	}
	return f.Fee
}
