package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-shop/app/db/fakers"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Products int
	Users    int
}

func DBSeed(ctx context.Context, db *gorm.DB, opts Options, logger *zap.Logger) error {
	productRepo := repositories.NewProductRepository(db)
	userRepo := repositories.NewUserRepository(db)

	for i := 0; i < opts.Products; i++ {
		product := fakers.ProductFaker()
		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", i+1, err)
		}
	}

	for i := 0; i < opts.Users; i++ {
		if err := userRepo.Create(ctx, fakers.UserFaker()); err != nil {
			return fmt.Errorf("failed to seed user %d: %w", i+1, err)
		}
	}

	logger.Info("database seeded", zap.Int("products", opts.Products), zap.Int("users", opts.Users))
	return nil
}
