package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 5, 23, 0, 0, 0, time.FixedZone("X", -5*3600)) }

	day, err := parseDay("", now)
	require.NoError(t, err)
	assert.Equal(t, "20240306", day.Format(dayLayout))

	day, err = parseDay("20231231", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), day)

	_, err = parseDay("2023-12-31", now)
	assert.Error(t, err)
}

func TestPrintOrders(t *testing.T) {
	var buf bytes.Buffer
	printOrders(&buf, nil, "$")
	assert.Equal(t, "no orders\n", buf.String())

	buf.Reset()
	printOrders(&buf, []models.Order{
		{Number: "ORD-20240305-0001", Status: models.OrderStatusPending, Total: decimal.RequireFromString("1234.5"), Email: "ada@example.com"},
		{Number: "ORD-20240305-0002", Status: models.OrderStatusPaid, Total: decimal.RequireFromString("4.99"), Email: "grace@example.com"},
	}, "$")

	out := buf.String()
	assert.Contains(t, out, "ORD-20240305-0001")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "paid")
	assert.Contains(t, out, "2 orders\n")
}
