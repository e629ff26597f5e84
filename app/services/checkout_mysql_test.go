//go:build integration

package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Rakhulsr/go-shop/app/configs"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/models/migrations"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("shop"),
		tcmysql.WithUsername("shop"),
		tcmysql.WithPassword("shop"),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=UTC")
	require.NoError(t, err)

	db, err := gorm.Open(gormmysql.Open(dsn), configs.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

type mysqlHarness struct {
	db       *gorm.DB
	products repositories.ProductRepositoryImpl
	users    repositories.UserRepositoryImpl
	carts    *services.CartService
	merge    *services.CartMergeService
	checkout *services.CheckoutService
}

func newMySQLHarness(t *testing.T, db *gorm.DB) *mysqlHarness {
	logger := zap.NewNop()
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	now := func() time.Time { return testDay }

	return &mysqlHarness{
		db:       db,
		products: productRepo,
		users:    repositories.NewUserRepository(db),
		carts:    services.NewCartService(db, cartRepo, cartItemRepo, productRepo, logger),
		merge:    services.NewCartMergeService(db, cartRepo, cartItemRepo, logger),
		checkout: services.NewCheckoutService(
			db, cartRepo, cartItemRepo, productRepo, orderRepo,
			repositories.NewOrderItemRepository(db),
			services.NewDailyOrderNumberer(orderRepo, now),
			services.NewFlatShipping(decimal.RequireFromString("4.99")),
			5,
			services.NewValidator(),
			logger,
		),
	}
}

// checkoutAll checks out one single-line cart per goroutine, all at once.
func (h *mysqlHarness) checkoutAll(t *testing.T, product *models.Product, n int, tag string) ([]*models.Order, []error) {
	ctx := context.Background()
	carts := make([]*models.Cart, n)
	for i := range carts {
		cart, err := h.carts.GetOrCreateCart(ctx, models.GuestOwner(fmt.Sprintf("%s-%d", tag, i)))
		require.NoError(t, err)
		_, err = h.carts.AddItem(ctx, cart, product.ID, 1)
		require.NoError(t, err)
		carts[i] = cart
	}

	orders := make([]*models.Order, n)
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range carts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			orders[i], errs[i] = h.checkout.Checkout(ctx, carts[i], validPayload())
		}(i)
	}
	close(start)
	wg.Wait()
	return orders, errs
}

func TestMySQLCheckout_Concurrency(t *testing.T) {
	db := openMySQL(t)
	h := newMySQLHarness(t, db)
	ctx := context.Background()

	t.Run("numbers stay unique", func(t *testing.T) {
		p := &models.Product{Name: "Plenty", Slug: "plenty", Price: decimal.RequireFromString("1.00"), Stock: 1000, IsActive: true}
		require.NoError(t, h.products.Create(ctx, p))

		for _, n := range []int{2, 10} {
			orders, errs := h.checkoutAll(t, p, n, fmt.Sprintf("numbers-%d", n))

			seen := map[string]bool{}
			for i, err := range errs {
				require.NoError(t, err, "checkout %d of %d", i, n)
				assert.False(t, seen[orders[i].Number], "duplicate %s", orders[i].Number)
				seen[orders[i].Number] = true
			}
			assert.Len(t, seen, n)
		}

		var dupes int64
		require.NoError(t, db.Raw("SELECT COUNT(*) FROM (SELECT number FROM orders GROUP BY number HAVING COUNT(*) > 1) d").Scan(&dupes).Error)
		assert.Zero(t, dupes)
	})

	t.Run("stock is never oversold", func(t *testing.T) {
		p := &models.Product{Name: "Scarce", Slug: "scarce", Price: decimal.RequireFromString("5.00"), Stock: 5, IsActive: true}
		require.NoError(t, h.products.Create(ctx, p))

		_, errs := h.checkoutAll(t, p, 10, "stock")

		var ok, short int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, services.ErrInsufficientStock):
				short++
			default:
				t.Errorf("unexpected checkout error: %v", err)
			}
		}
		assert.Equal(t, 5, ok)
		assert.Equal(t, 5, short)

		stored, err := h.products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.Stock)
	})
}

// concurrently runs fn n times at once and collects the errors.
func concurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

func TestMySQLCarts_Concurrency(t *testing.T) {
	db := openMySQL(t)
	h := newMySQLHarness(t, db)
	ctx := context.Background()

	t.Run("first requests of a new session share one cart", func(t *testing.T) {
		const n = 10
		ids := make([]string, n)
		errs := concurrently(n, func(i int) error {
			cart, err := h.carts.GetOrCreateCart(ctx, models.GuestOwner("fresh-session"))
			if err == nil {
				ids[i] = cart.ID
			}
			return err
		})
		for i, err := range errs {
			require.NoError(t, err, "request %d", i)
			assert.Equal(t, ids[0], ids[i])
		}

		var carts int64
		require.NoError(t, db.Model(&models.Cart{}).Where("session_key = ?", "fresh-session").Count(&carts).Error)
		assert.EqualValues(t, 1, carts)
	})

	t.Run("merges into a user without a cart", func(t *testing.T) {
		p := &models.Product{Name: "Merged", Slug: "merged", Price: decimal.RequireFromString("2.00"), Stock: 10, IsActive: true}
		require.NoError(t, h.products.Create(ctx, p))
		u := &models.User{Username: "merger", Email: "merger@example.com", Password: "correct-horse"}
		require.NoError(t, h.users.Create(ctx, u))

		const n = 4
		for i := 0; i < n; i++ {
			cart, err := h.carts.GetOrCreateCart(ctx, models.GuestOwner(fmt.Sprintf("device-%d", i)))
			require.NoError(t, err)
			_, err = h.carts.AddItem(ctx, cart, p.ID, 1)
			require.NoError(t, err)
		}

		errs := concurrently(n, func(i int) error {
			return h.merge.Merge(ctx, fmt.Sprintf("device-%d", i), u.ID)
		})
		for i, err := range errs {
			require.NoError(t, err, "merge %d", i)
		}

		cart, err := h.carts.GetOrCreateCart(ctx, models.UserOwner(u.ID))
		require.NoError(t, err)
		loaded, err := h.carts.CartWithItems(ctx, cart)
		require.NoError(t, err)
		require.Len(t, loaded.CartItems, 1)
		assert.Equal(t, n, loaded.CartItems[0].Qty)
	})
}

func TestMySQL_DuplicateKeyDetection(t *testing.T) {
	db := openMySQL(t)
	ctx := context.Background()
	products := repositories.NewProductRepository(db)

	first := &models.Product{Name: "One", Slug: "same", Price: decimal.RequireFromString("1.00"), IsActive: true}
	require.NoError(t, products.Create(ctx, first))

	err := products.Create(ctx, &models.Product{Name: "Two", Slug: "same", Price: decimal.RequireFromString("1.00"), IsActive: true})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicateKey(err))

	cart, err := repositories.NewCartRepository(db).GetOrCreateByOwner(ctx, nil, models.GuestOwner("fk"))
	require.NoError(t, err)
	require.NoError(t, repositories.NewCartItemRepository(db).Upsert(ctx, nil, &models.CartItem{
		CartID: cart.ID, ProductID: first.ID, Qty: 1, UnitPrice: first.Price,
	}))
	err = products.Delete(ctx, first.ID)
	require.Error(t, err)
	assert.True(t, repositories.IsForeignKeyViolation(err))
}
