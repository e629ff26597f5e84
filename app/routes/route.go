package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/configs"
	"github.com/Rakhulsr/go-shop/app/handlers"
	"github.com/Rakhulsr/go-shop/app/handlers/admin"
	"github.com/Rakhulsr/go-shop/app/middlewares"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/Rakhulsr/go-shop/app/utils/renderer"
	"github.com/Rakhulsr/go-shop/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys, logger *zap.Logger) http.Handler {
	rd := renderer.New(env.IsDevelopment())
	validate := services.NewValidator()
	sessionStore := sessions.NewCookieSessionStore(logger, !env.IsDevelopment(), keys.AuthKey, keys.EncKey)

	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	userRepo := repositories.NewUserRepository(db)

	catalogSvc := services.NewCatalogService(productRepo, validate, logger)
	cartSvc := services.NewCartService(db, cartRepo, cartItemRepo, productRepo, logger)
	mergeSvc := services.NewCartMergeService(db, cartRepo, cartItemRepo, logger)
	checkoutSvc := services.NewCheckoutService(
		db,
		cartRepo,
		cartItemRepo,
		productRepo,
		orderRepo,
		orderItemRepo,
		services.NewDailyOrderNumberer(orderRepo, nil),
		services.NewFlatShipping(env.ShippingFlatFee),
		env.OrderNumberAttempts,
		validate,
		logger,
	)
	orderSvc := services.NewOrderService(orderRepo, logger)
	authSvc := services.NewAuthService(userRepo, validate, logger)

	productHandler := handlers.NewProductHandler(rd, catalogSvc, env.CurrencySymbol, logger)
	cartHandler := handlers.NewCartHandler(rd, cartSvc, sessionStore, env.CurrencySymbol, logger)
	checkoutHandler := handlers.NewCheckoutHandler(rd, cartSvc, checkoutSvc, sessionStore, env.CurrencySymbol, logger)
	authHandler := handlers.NewAuthHandler(rd, authSvc, mergeSvc, sessionStore, logger)
	orderHandler := handlers.NewOrderHandler(rd, orderSvc, env.CurrencySymbol, logger)
	adminHandler := admin.NewAdminHandler(rd, catalogSvc, orderSvc, env.CurrencySymbol, logger)

	requireAuth := middlewares.RequireAuthMiddleware(rd)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLoggerMiddleware(logger))
	router.Use(middlewares.SessionAuthMiddleware(sessionStore))

	api := router.PathPrefix("/api").Subrouter()

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(userRepo, rd, logger))
	adminRouter.HandleFunc("/products", adminHandler.ListProducts).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("PUT")
	adminRouter.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")
	adminRouter.HandleFunc("/products/{id}/deactivate", adminHandler.DeactivateProduct).Methods("POST")
	adminRouter.HandleFunc("/orders", adminHandler.ListOrders).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.GetOrder).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatus).Methods("PATCH")

	api.HandleFunc("/csrf", handlers.CSRFToken(rd)).Methods("GET")

	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}", cartHandler.UpdateItem).Methods("PATCH")
	api.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")

	api.HandleFunc("/checkout/summary", checkoutHandler.Summary).Methods("GET")
	api.HandleFunc("/checkout/confirm", checkoutHandler.Confirm).Methods("POST")

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.Handle("/auth/me", requireAuth(http.HandlerFunc(authHandler.Me))).Methods("GET")

	api.Handle("/orders", requireAuth(http.HandlerFunc(orderHandler.MyOrders))).Methods("GET")
	api.Handle("/orders/{number}", requireAuth(http.HandlerFunc(orderHandler.MyOrder))).Methods("GET")

	if len(keys.CSRFKey) == 0 {
		logger.Warn("APP_CSRF_KEY not set, CSRF protection disabled")
		return router
	}

	protect := csrf.Protect(
		keys.CSRFKey,
		csrf.Secure(!env.IsDevelopment()),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rd.JSON(w, http.StatusForbidden, map[string]string{"detail": "csrf_failed"})
		})),
	)
	return protect(router)
}
