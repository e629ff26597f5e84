package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/go-shop/app/repositories"
	"gorm.io/gorm"
)

const (
	orderNumberPrefix = "ORD"
	maxDailySequence  = 9999
)

// OrderNumberer hands out order numbers inside the caller's transaction.
type OrderNumberer interface {
	Next(ctx context.Context, tx *gorm.DB) (string, error)
}

// DailyOrderNumberer issues ORD-YYYYMMDD-NNNN numbers, one past the highest
// number already stored for the day. Two transactions can still read the
// same maximum; the unique index on orders.number turns that into a
// duplicate key the checkout retries.
type DailyOrderNumberer struct {
	orderRepo repositories.OrderRepository
	now       func() time.Time
}

func NewDailyOrderNumberer(orderRepo repositories.OrderRepository, now func() time.Time) *DailyOrderNumberer {
	if now == nil {
		now = time.Now
	}
	return &DailyOrderNumberer{orderRepo: orderRepo, now: now}
}

// DayPrefix is the number prefix shared by all orders of the given day.
func DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s-", orderNumberPrefix, day.UTC().Format("20060102"))
}

func (n *DailyOrderNumberer) Next(ctx context.Context, tx *gorm.DB) (string, error) {
	prefix := DayPrefix(n.now())

	latest, err := n.orderRepo.LatestNumberWithPrefix(ctx, tx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read latest order number: %w", err)
	}

	seq := 0
	if latest != "" {
		seq, err = strconv.Atoi(strings.TrimPrefix(latest, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed order number %q: %w", latest, err)
		}
	}
	if seq >= maxDailySequence {
		return "", ErrOrderNumberingExhausted
	}

	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
