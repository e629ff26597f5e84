package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartMergeService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	logger       *zap.Logger
}

func NewCartMergeService(db *gorm.DB, cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, logger *zap.Logger) *CartMergeService {
	return &CartMergeService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		logger:       logger,
	}
}

// Merge folds the guest cart for sessionKey into the user's cart and
// deletes the guest cart. Quantities of shared products add up under the
// user's price snapshot; other lines keep the guest snapshot. Without a
// guest cart it does nothing, so repeated calls are harmless.
func (s *CartMergeService) Merge(ctx context.Context, sessionKey, userID string) error {
	if sessionKey == "" || userID == "" {
		return nil
	}

	var moved int
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		guest, err := s.cartRepo.FindByOwner(ctx, tx, models.GuestOwner(sessionKey))
		if err != nil {
			return err
		}
		if guest == nil {
			return nil
		}

		userCart, err := s.cartRepo.GetOrCreateByOwner(ctx, tx, models.UserOwner(userID))
		if err != nil {
			return err
		}

		items, err := s.cartItemRepo.GetByCartID(ctx, tx, guest.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.cartItemRepo.Upsert(ctx, tx, &models.CartItem{
				CartID:    userCart.ID,
				ProductID: item.ProductID,
				Qty:       item.Qty,
				UnitPrice: item.UnitPrice,
			}); err != nil {
				return err
			}
		}
		moved = len(items)

		if moved > 0 {
			if err := s.cartRepo.Touch(ctx, tx, userCart.ID); err != nil {
				return err
			}
		}
		return s.cartRepo.Delete(ctx, tx, guest.ID)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}

	if moved > 0 {
		s.logger.Info("guest cart merged",
			zap.String("user_id", userID),
			zap.Int("lines", moved))
	}
	return nil
}
