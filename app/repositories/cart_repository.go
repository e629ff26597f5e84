package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepositoryImpl interface {
	FindByOwner(ctx context.Context, db *gorm.DB, owner models.CartOwner) (*models.Cart, error)
	GetOrCreateByOwner(ctx context.Context, db *gorm.DB, owner models.CartOwner) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, db *gorm.DB, cartID string) (*models.Cart, error)
	Touch(ctx context.Context, db *gorm.DB, cartID string) error
	Delete(ctx context.Context, db *gorm.DB, cartID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

func (r *cartRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

func ownerColumn(owner models.CartOwner) string {
	if owner.IsUser() {
		return "user_id"
	}
	return "session_key"
}

// FindByOwner uses a locking read so that, inside a transaction, it sees
// rows committed by concurrent get-or-create calls and serializes writers
// of the same cart.
func (r *cartRepository) FindByOwner(ctx context.Context, db *gorm.DB, owner models.CartOwner) (*models.Cart, error) {
	return r.findByOwner(ctx, db, owner, true)
}

func (r *cartRepository) findByOwner(ctx context.Context, db *gorm.DB, owner models.CartOwner, lock bool) (*models.Cart, error) {
	query := r.conn(db).WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	err := query.Where(ownerColumn(owner)+" = ?", owner.Key()).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByOwner is safe against two first requests racing: the insert
// is a no-op on conflict with the owner's unique index, and the row is read
// back with a lock either way. The first lookup must not lock: on MySQL a
// locking read of a missing key takes a gap lock, and two such gap locks
// deadlock the inserts that follow.
func (r *cartRepository) GetOrCreateByOwner(ctx context.Context, db *gorm.DB, owner models.CartOwner) (*models.Cart, error) {
	cart, err := r.findByOwner(ctx, db, owner, false)
	if err != nil {
		return nil, err
	}

	if cart == nil {
		if err := r.conn(db).WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(models.NewCart(owner)).Error; err != nil {
			return nil, err
		}
	}

	cart, err = r.findByOwner(ctx, db, owner, true)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (r *cartRepository) GetCartWithItems(ctx context.Context, db *gorm.DB, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.conn(db).WithContext(ctx).
		Preload("CartItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Preload("CartItems.Product").
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Touch(ctx context.Context, db *gorm.DB, cartID string) error {
	return r.conn(db).WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *cartRepository) Delete(ctx context.Context, db *gorm.DB, cartID string) error {
	conn := r.conn(db).WithContext(ctx)
	if err := conn.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return conn.Where("id = ?", cartID).Delete(&models.Cart{}).Error
}
