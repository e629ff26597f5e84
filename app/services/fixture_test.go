package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-shop/app/db/testdb"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testDay = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

type fixture struct {
	ctx context.Context
	db  *gorm.DB

	productRepo   repositories.ProductRepositoryImpl
	cartRepo      repositories.CartRepositoryImpl
	cartItemRepo  repositories.CartItemRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	userRepo      repositories.UserRepositoryImpl

	now      time.Time
	numberer *services.DailyOrderNumberer

	catalog  *services.CatalogService
	carts    *services.CartService
	merge    *services.CartMergeService
	checkout *services.CheckoutService
	orders   *services.OrderService
	auth     *services.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	logger := zaptest.NewLogger(t)
	validate := services.NewValidator()

	f := &fixture{
		ctx:           context.Background(),
		db:            db,
		productRepo:   repositories.NewProductRepository(db),
		cartRepo:      repositories.NewCartRepository(db),
		cartItemRepo:  repositories.NewCartItemRepository(db),
		orderRepo:     repositories.NewOrderRepository(db),
		orderItemRepo: repositories.NewOrderItemRepository(db),
		userRepo:      repositories.NewUserRepository(db),
		now:           testDay,
	}
	f.numberer = services.NewDailyOrderNumberer(f.orderRepo, func() time.Time { return f.now })

	f.catalog = services.NewCatalogService(f.productRepo, validate, logger)
	f.carts = services.NewCartService(db, f.cartRepo, f.cartItemRepo, f.productRepo, logger)
	f.merge = services.NewCartMergeService(db, f.cartRepo, f.cartItemRepo, logger)
	f.checkout = f.checkoutWith(f.numberer, 3)
	f.orders = services.NewOrderService(f.orderRepo, logger)
	f.auth = services.NewAuthService(f.userRepo, validate, logger)
	return f
}

func (f *fixture) checkoutWith(numberer services.OrderNumberer, attempts int) *services.CheckoutService {
	return services.NewCheckoutService(
		f.db,
		f.cartRepo,
		f.cartItemRepo,
		f.productRepo,
		f.orderRepo,
		f.orderItemRepo,
		numberer,
		services.NewFlatShipping(decimal.RequireFromString("4.99")),
		attempts,
		services.NewValidator(),
		zap.NewNop(),
	)
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Slug:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, f.productRepo.Create(f.ctx, p))
	return p
}

func (f *fixture) guestCart(t *testing.T, key string) *models.Cart {
	t.Helper()
	cart, err := f.carts.GetOrCreateCart(f.ctx, models.GuestOwner(key))
	require.NoError(t, err)
	return cart
}

func (f *fixture) userCart(t *testing.T, userID string) *models.Cart {
	t.Helper()
	cart, err := f.carts.GetOrCreateCart(f.ctx, models.UserOwner(userID))
	require.NoError(t, err)
	return cart
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "correct-horse"}
	require.NoError(t, f.userRepo.Create(f.ctx, u))
	return u
}

func (f *fixture) add(t *testing.T, cart *models.Cart, p *models.Product, qty int) *models.CartItem {
	t.Helper()
	item, err := f.carts.AddItem(f.ctx, cart, p.ID, qty)
	require.NoError(t, err)
	return item
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.productRepo.GetByID(f.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func (f *fixture) cartLines(t *testing.T, cart *models.Cart) []models.CartItem {
	t.Helper()
	items, err := f.cartItemRepo.GetByCartID(f.ctx, nil, cart.ID)
	require.NoError(t, err)
	return items
}

func validPayload() services.CustomerPayload {
	return services.CustomerPayload{
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
		Phone:    "+44 20 7946 0000",
		Address:  "12 St James's Square",
		City:     "London",
		Region:   "Greater London",
		Notes:    "Leave at the door",
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}
