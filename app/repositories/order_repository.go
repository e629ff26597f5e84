package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-shop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	LatestNumberWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindByNumberPrefix(ctx context.Context, prefix string) ([]models.Order, error)
	GetAllOrders(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status string) (bool, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit("OrderItems").Create(order).Error
}

// LatestNumberWithPrefix returns the greatest order number starting with
// prefix, or "" when there is none. Numbers are fixed width so the string
// order matches the numeric one. The read locks, so a transaction that
// waited on it sees numbers committed in the meantime.
func (r *gormOrderRepository) LatestNumberWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error) {
	var numbers []string
	err := tx.WithContext(ctx).
		Model(&models.Order{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order

	err := preloadItems(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order

	err := preloadItems(r.db.WithContext(ctx)).Where("number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order

	err := preloadItems(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) FindByNumberPrefix(ctx context.Context, prefix string) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Where("number LIKE ?", prefix+"%").
		Order("number ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders lists newest first; an empty status means every status.
func (r *gormOrderRepository) GetAllOrders(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order

	query := preloadItems(r.db.WithContext(ctx)).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	return result.RowsAffected > 0, result.Error
}
