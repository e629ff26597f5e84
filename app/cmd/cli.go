package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-shop/app/configs"
	"github.com/Rakhulsr/go-shop/app/db/seeders"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/models/migrations"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/Rakhulsr/go-shop/app/routes"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/Rakhulsr/go-shop/app/utils/format"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

const dayLayout = "20060102"

type app struct {
	env    configs.ENV
	logger *zap.Logger
}

// RunCli runs the shop binary. Without a subcommand it serves HTTP.
func RunCli(ctx context.Context, args []string, env configs.ENV, logger *zap.Logger) error {
	a := &app{env: env, logger: logger}

	cmd := &cli.Command{
		Name:   "go-shop",
		Usage:  "Cart and checkout API",
		Action: a.serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: a.serve,
			},
			{
				Name:   "migrate",
				Usage:  "Run database migration",
				Action: a.migrate,
			},
			{
				Name:  "seed",
				Usage: "Insert fake products and customers",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 20, Usage: "number of products to create"},
					&cli.IntFlag{Name: "users", Value: 5, Usage: "number of customers to create"},
				},
				Action: a.seed,
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateSessionKeys(c.Root().Writer); err != nil {
						return err
					}
					a.logger.Info("key generation complete, copy the keys to your .env file")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: a.createAdmin,
			},
			{
				Name:  "orders",
				Usage: "List the orders numbered on a day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "day as YYYYMMDD, defaults to today (UTC)"},
				},
				Action: a.orders,
			},
		},
	}

	return cmd.Run(ctx, args)
}

func (a *app) open() (*gorm.DB, error) {
	return configs.OpenConnection(a.env, a.logger)
}

func (a *app) serve(ctx context.Context, c *cli.Command) error {
	keys, err := configs.LoadSessionKeys(a.env)
	if err != nil {
		return fmt.Errorf("failed to load session keys: %w", err)
	}

	db, err := a.open()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              a.env.Port,
		Handler:           routes.NewRouter(db, a.env, keys, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (a *app) migrate(ctx context.Context, c *cli.Command) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return err
	}
	a.logger.Info("migration complete")
	return nil
}

func (a *app) seed(ctx context.Context, c *cli.Command) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	opts := seeders.Options{
		Products: int(c.Int("products")),
		Users:    int(c.Int("users")),
	}
	return seeders.DBSeed(ctx, db, opts, a.logger)
}

func (a *app) createAdmin(ctx context.Context, c *cli.Command) error {
	db, err := a.open()
	if err != nil {
		return err
	}

	authSvc := services.NewAuthService(repositories.NewUserRepository(db), services.NewValidator(), a.logger)
	user, err := authSvc.CreateAdmin(ctx, services.RegisterInput{
		Username:  c.String("username"),
		Email:     c.String("email"),
		Password:  c.String("password"),
		Password2: c.String("password"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "admin %s created (%s)\n", user.Username, user.ID)
	return nil
}

func (a *app) orders(ctx context.Context, c *cli.Command) error {
	day, err := parseDay(c.String("date"), time.Now)
	if err != nil {
		return err
	}

	db, err := a.open()
	if err != nil {
		return err
	}

	orderSvc := services.NewOrderService(repositories.NewOrderRepository(db), a.logger)
	orders, err := orderSvc.ListForDay(ctx, day)
	if err != nil {
		return err
	}
	printOrders(c.Root().Writer, orders, a.env.CurrencySymbol)
	return nil
}

func parseDay(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return now().UTC(), nil
	}
	day, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYYMMDD", value)
	}
	return day, nil
}

func printOrders(w io.Writer, orders []models.Order, symbol string) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "no orders")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(w, "%s  %-9s  %12s  %s\n", o.Number, o.Status, format.Money(o.Total, symbol), o.Email)
	}
	fmt.Fprintf(w, "%d orders\n", len(orders))
}
