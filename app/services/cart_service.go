package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/utils/calc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxLineQty caps the quantity a shopper can put on one cart line.
const MaxLineQty = 9999

// SessionKeySource yields the anonymous visitor's key, allocating and
// persisting one on first use.
type SessionKeySource interface {
	SessionKey() (string, error)
}

// ResolveOwner picks the cart identity for a request: the user when one is
// logged in, otherwise the visitor's session key.
func ResolveOwner(userID string, src SessionKeySource) (models.CartOwner, error) {
	if userID != "" {
		return models.UserOwner(userID), nil
	}
	if src == nil {
		return models.CartOwner{}, fmt.Errorf("%w: no session", ErrInvalidRequest)
	}

	key, err := src.SessionKey()
	if err != nil {
		return models.CartOwner{}, fmt.Errorf("failed to allocate session key: %w", err)
	}
	if key == "" {
		return models.CartOwner{}, fmt.Errorf("%w: empty session key", ErrInvalidRequest)
	}
	return models.GuestOwner(key), nil
}

// CartSubtotal sums line subtotals; zero for no lines.
func CartSubtotal(items []models.CartItem) decimal.Decimal {
	subtotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		subtotals = append(subtotals, item.Subtotal())
	}
	return calc.Sum(subtotals...)
}

type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	logger       *zap.Logger
}

func NewCartService(db *gorm.DB, cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl, logger *zap.Logger) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (s *CartService) GetOrCreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	if !owner.Valid() {
		return nil, fmt.Errorf("%w: cart owner is required", ErrInvalidRequest)
	}

	var cart *models.Cart
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		cart, err = s.cartRepo.GetOrCreateByOwner(ctx, tx, owner)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart for %s: %w", owner, err)
	}
	return cart, nil
}

// CartWithItems reloads the cart with its lines in insertion order.
func (s *CartService) CartWithItems(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	loaded, err := s.cartRepo.GetCartWithItems(ctx, nil, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if loaded == nil {
		return nil, fmt.Errorf("cart %s: %w", cart.ID, ErrNotFound)
	}
	return loaded, nil
}

// AddItem adds qty of the product to the cart. An existing line keeps the
// price it was first added at.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, productID string, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, invalidField("qty", "min")
	}
	if qty > MaxLineQty {
		return nil, invalidField("qty", "max")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if !product.IsActive {
		return nil, invalidField("product_id", "inactive")
	}

	var line *models.CartItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartItemRepo.Upsert(ctx, tx, &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Qty:       qty,
			UnitPrice: product.Price,
		}); err != nil {
			return err
		}
		if err := s.cartRepo.Touch(ctx, tx, cart.ID); err != nil {
			return err
		}

		var err error
		line, err = s.cartItemRepo.GetCartAndProduct(ctx, tx, cart.ID, product.ID)
		if err != nil {
			return err
		}
		if line != nil && line.Qty > MaxLineQty {
			return invalidField("qty", "max")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	s.logger.Debug("cart item added",
		zap.String("cart_id", cart.ID),
		zap.String("product_id", product.ID),
		zap.Int("qty", qty))
	return line, nil
}

// UpdateItem overwrites the line quantity; qty below 1 removes the line and
// returns a nil item.
func (s *CartService) UpdateItem(ctx context.Context, cart *models.Cart, itemID string, qty int) (*models.CartItem, error) {
	if qty > MaxLineQty {
		return nil, invalidField("qty", "max")
	}

	var line *models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.cartItemRepo.GetByID(ctx, tx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}

		if qty < 1 {
			if _, err := s.cartItemRepo.Delete(ctx, tx, cart.ID, itemID); err != nil {
				return err
			}
		} else {
			if err := s.cartItemRepo.UpdateQty(ctx, tx, itemID, qty); err != nil {
				return err
			}
			item.Qty = qty
			line = item
		}
		return s.cartRepo.Touch(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cart *models.Cart, itemID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.cartItemRepo.Delete(ctx, tx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}
		return s.cartRepo.Touch(ctx, tx, cart.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) Total(ctx context.Context, cart *models.Cart) (decimal.Decimal, error) {
	items, err := s.cartItemRepo.GetByCartID(ctx, nil, cart.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load cart items: %w", err)
	}
	return CartSubtotal(items), nil
}
