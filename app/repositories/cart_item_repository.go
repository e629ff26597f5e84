package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepositoryImpl interface {
	Upsert(ctx context.Context, db *gorm.DB, item *models.CartItem) error
	GetByID(ctx context.Context, db *gorm.DB, cartID, itemID string) (*models.CartItem, error)
	GetByCartID(ctx context.Context, db *gorm.DB, cartID string) ([]models.CartItem, error)
	GetCartAndProduct(ctx context.Context, db *gorm.DB, cartID, productID string) (*models.CartItem, error)
	UpdateQty(ctx context.Context, db *gorm.DB, itemID string, qty int) error
	Delete(ctx context.Context, db *gorm.DB, cartID, itemID string) (bool, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error
}

type CartItemRepository struct {
	DB *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.DB
	}
	return db
}

// Upsert inserts the line or, when the cart already holds the product,
// adds item.Qty to the stored quantity. The stored price snapshot is left
// alone on conflict.
func (r *CartItemRepository) Upsert(ctx context.Context, db *gorm.DB, item *models.CartItem) error {
	return r.conn(db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"qty":        gorm.Expr("qty + ?", item.Qty),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(item).Error
}

func (r *CartItemRepository) GetByID(ctx context.Context, db *gorm.DB, cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.conn(db).WithContext(ctx).
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartItemRepository) GetByCartID(ctx context.Context, db *gorm.DB, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.conn(db).WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartItemRepository) GetCartAndProduct(ctx context.Context, db *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem

	err := r.conn(db).WithContext(ctx).
		Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (r *CartItemRepository) UpdateQty(ctx context.Context, db *gorm.DB, itemID string, qty int) error {
	return r.conn(db).WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("qty", qty).Error
}

func (r *CartItemRepository) Delete(ctx context.Context, db *gorm.DB, cartID, itemID string) (bool, error) {
	result := r.conn(db).WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	return result.RowsAffected > 0, result.Error
}

func (r *CartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	return tx.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
