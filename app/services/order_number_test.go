package services_test

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (f *fixture) insertOrder(t *testing.T, number string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Order{
		Number:   number,
		Email:    "seed@example.com",
		FullName: "Seed",
		Address:  "1 Main St",
		City:     "Springfield",
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
		Status:   models.OrderStatusPending,
	}).Error)
}

func (f *fixture) nextNumber(t *testing.T) (string, error) {
	t.Helper()
	var number string
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = f.numberer.Next(f.ctx, tx)
		return err
	})
	return number, err
}

func TestDayPrefix(t *testing.T) {
	assert.Equal(t, "ORD-20240305-", services.DayPrefix(testDay))

	late := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, "ORD-20240306-", services.DayPrefix(late))
}

func TestOrderNumber_StartsAtOneAndIncrements(t *testing.T) {
	f := newFixture(t)

	number, err := f.nextNumber(t)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240305-0001", number)

	f.insertOrder(t, number)
	f.insertOrder(t, "ORD-20240305-0002")
	f.insertOrder(t, "ORD-20240304-0077")

	number, err = f.nextNumber(t)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240305-0003", number)
}

func TestOrderNumber_ResetsOnNewDay(t *testing.T) {
	f := newFixture(t)
	f.insertOrder(t, "ORD-20240305-0041")

	f.now = testDay.Add(24 * time.Hour)
	number, err := f.nextNumber(t)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240306-0001", number)
}

func TestOrderNumber_FollowsHighestNotLatest(t *testing.T) {
	f := newFixture(t)
	f.insertOrder(t, "ORD-20240305-0010")
	f.insertOrder(t, "ORD-20240305-0002")

	number, err := f.nextNumber(t)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240305-0011", number)
}

func TestOrderNumber_ExhaustedAfter9999(t *testing.T) {
	f := newFixture(t)
	f.insertOrder(t, "ORD-20240305-9999")

	_, err := f.nextNumber(t)
	require.ErrorIs(t, err, services.ErrOrderNumberingExhausted)
}
