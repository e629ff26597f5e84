package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo repositories.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetForUser hides orders of other users behind ErrNotFound.
func (s *OrderService) GetForUser(ctx context.Context, userID, number string) (*models.Order, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID == nil || *order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", number, ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, status string) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	orders, err := s.orderRepo.GetAllOrders(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return order, nil
}

// ListForDay returns the orders numbered on the given day, in number order.
func (s *OrderService) ListForDay(ctx context.Context, day time.Time) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByNumberPrefix(ctx, DayPrefix(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus changes the status label; nothing else on an order is
// mutable.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	found, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if found {
		s.logger.Info("order status updated",
			zap.String("order_id", id),
			zap.String("number", order.Number),
			zap.String("status", status))
	}
	return order, nil
}
