package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", Money(decimal.RequireFromString("1234.5"), "$"))
	assert.Equal(t, "$4.99", Money(decimal.RequireFromString("4.99"), ""))
	assert.Equal(t, "€0.00", Money(decimal.Zero, "€"))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "10.00", Amount(decimal.NewFromInt(10)))
	assert.Equal(t, "4.99", Amount(decimal.RequireFromString("4.990")))
}
