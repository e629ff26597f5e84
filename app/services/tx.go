package services

import (
	"context"

	"github.com/Rakhulsr/go-shop/app/repositories"
	"gorm.io/gorm"
)

const deadlockAttempts = 5

// inTx runs fn in a transaction and starts over when MySQL rolls it back as
// a deadlock victim. fn must not leak state from a failed attempt.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < deadlockAttempts; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if !repositories.IsDeadlock(err) {
			return err
		}
	}
	return err
}
