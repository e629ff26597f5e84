package calc

import "github.com/shopspring/decimal"

// LineSubtotal is unit price times quantity, exact.
func LineSubtotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func CalculateGrandTotal(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}
