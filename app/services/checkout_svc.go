package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerPayload is copied onto the order as entered, after trimming.
type CustomerPayload struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"max=30"`
	Address  string `json:"address" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=100"`
	Region   string `json:"region" validate:"max=100"`
	Notes    string `json:"notes"`
}

func (p *CustomerPayload) normalize() {
	p.Email = strings.TrimSpace(p.Email)
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.Region = strings.TrimSpace(p.Region)
	p.Notes = strings.TrimSpace(p.Notes)
}

type CheckoutSummary struct {
	Items    []models.CartItem
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

type CheckoutService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepositoryImpl
	cartItemRepo  repositories.CartItemRepositoryImpl
	productRepo   repositories.ProductRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	numberer      OrderNumberer
	shipping      ShippingPolicy
	maxAttempts   int
	validate      *validator.Validate
	logger        *zap.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	numberer OrderNumberer,
	shipping ShippingPolicy,
	maxAttempts int,
	validate *validator.Validate,
	logger *zap.Logger,
) *CheckoutService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		numberer:      numberer,
		shipping:      shipping,
		maxAttempts:   maxAttempts,
		validate:      validate,
		logger:        logger,
	}
}

func (s *CheckoutService) Summary(ctx context.Context, cart *models.Cart) (*CheckoutSummary, error) {
	items, err := s.cartItemRepo.GetByCartID(ctx, nil, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	subtotal := CartSubtotal(items)
	shipping := s.shipping.Cost(subtotal, len(items))
	return &CheckoutSummary{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    calc.CalculateGrandTotal(subtotal, shipping),
	}, nil
}

// Checkout turns the cart into a pending order in one transaction. A
// collision on the order number rolls the attempt back and runs it again
// with a fresh number; every other failure is returned as is.
func (s *CheckoutService) Checkout(ctx context.Context, cart *models.Cart, payload CustomerPayload) (*models.Order, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart: %w", ErrNotFound)
	}

	payload.normalize()
	if err := validateStruct(s.validate, payload); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		order, err := s.checkoutOnce(ctx, cart, payload)
		if err == nil {
			s.logger.Info("order created",
				zap.String("order_id", order.ID),
				zap.String("number", order.Number),
				zap.String("cart_id", cart.ID),
				zap.String("total", order.Total.StringFixed(2)),
				zap.Int("attempt", attempt))
			return order, nil
		}
		if !errors.Is(err, ErrDuplicateNumber) {
			return nil, err
		}
		s.logger.Warn("order number collision, retrying",
			zap.String("cart_id", cart.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return nil, fmt.Errorf("%w: no free number after %d attempts", ErrOrderNumberingExhausted, s.maxAttempts)
}

func (s *CheckoutService) checkoutOnce(ctx context.Context, cart *models.Cart, payload CustomerPayload) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.cartItemRepo.GetByCartID(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]string, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := s.productRepo.LockByIDs(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}
		byID := make(map[string]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, item := range items {
			p, ok := byID[item.ProductID]
			if !ok || item.Qty > p.Stock {
				return &StockError{ProductID: item.ProductID}
			}
		}

		subtotal := CartSubtotal(items)
		shipping := s.shipping.Cost(subtotal, len(items))

		number, err := s.numberer.Next(ctx, tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:   cart.UserID,
			Number:   number,
			Email:    payload.Email,
			FullName: payload.FullName,
			Phone:    payload.Phone,
			Address:  payload.Address,
			City:     payload.City,
			Region:   payload.Region,
			Notes:    payload.Notes,
			Subtotal: subtotal,
			Shipping: shipping,
			Total:    calc.CalculateGrandTotal(subtotal, shipping),
			Status:   models.OrderStatusPending,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			// Two first orders of a day can deadlock on the gap lock
			// taken by the number read; either way the number is lost.
			if repositories.IsDuplicateKey(err) || repositories.IsDeadlock(err) {
				return fmt.Errorf("%w: %s", ErrDuplicateNumber, number)
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: byID[item.ProductID].Name,
				Qty:         item.Qty,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal(),
			})
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		for _, item := range items {
			ok, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Qty)
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if !ok {
				return &StockError{ProductID: item.ProductID}
			}
		}

		if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		if err := s.cartRepo.Touch(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("failed to touch cart: %w", err)
		}

		order.OrderItems = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
