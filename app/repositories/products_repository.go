package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-shop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl interface {
	GetActive(ctx context.Context) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	Delete(ctx context.Context, id string) error
	IsReferenced(ctx context.Context, id string) (bool, error)
	LockByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]models.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).
		Model(product).
		Select("name", "slug", "price", "stock", "is_active", "updated_at").
		Updates(product).Error
}

func (p *productRepository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	result := p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", active)
	return result.RowsAffected > 0, result.Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (p *productRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var cartRefs, orderRefs int64
	if err := p.db.WithContext(ctx).Model(&models.CartItem{}).Where("product_id = ?", id).Count(&cartRefs).Error; err != nil {
		return false, err
	}
	if err := p.db.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderRefs).Error; err != nil {
		return false, err
	}
	return cartRefs+orderRefs > 0, nil
}

// LockByIDs takes row locks in primary key order so concurrent checkouts
// over overlapping products acquire them in the same sequence.
func (p *productRepository) LockByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]models.Product, error) {
	var products []models.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock lowers stock only if enough remains; false means the
// guard rejected it and nothing changed.
func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
