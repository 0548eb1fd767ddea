package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MikeMC777/mealmoment/internal/auth"
	"github.com/MikeMC777/mealmoment/internal/cart"
	"github.com/MikeMC777/mealmoment/internal/catalog"
	"github.com/MikeMC777/mealmoment/internal/config"
	"github.com/MikeMC777/mealmoment/internal/db"
	"github.com/MikeMC777/mealmoment/internal/logging"
	"github.com/MikeMC777/mealmoment/internal/order"
	"github.com/MikeMC777/mealmoment/internal/payment"
	"github.com/MikeMC777/mealmoment/internal/user"
)

// @title                      MealMoment API
// @version                    1.0
// @description                Food ordering backend: catalog, carts, checkout and order tracking.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("mealmoment-api", "info", "console")
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup("mealmoment-api", cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("mealmoment-api stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.PostgresDSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	pool, err := db.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := catalog.NewSeeder(pool).Apply(ctx, seed); err != nil {
			return err
		}
		log.Info().Str("file", cfg.SeedFile).Msg("catalog seeded")
	}

	users := user.NewService(user.NewPGRepo(pool))
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("admin bootstrap: %w", err)
		}
	}

	fallback, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}

	gw, closeGW, err := newGateway(cfg)
	if err != nil {
		return fmt.Errorf("payment: %w", err)
	}
	defer closeGW()

	catalogSvc := catalog.NewService(catalog.NewPGRepo(pool), cfg.MealClock == config.MealClockCity, fallback)
	pricing := cart.Pricing{TaxRate: cfg.TaxRate, DeliveryFee: cfg.DeliveryFee}
	cartSvc := cart.NewService(cart.NewPGRepo(pool), catalogSvc, pricing)
	orderSvc := order.NewService(pool, order.NewPGRepo(pool), gw, order.Options{
		Pricing:     pricing,
		DeliveryETA: cfg.DeliveryETA,
		Currency:    cfg.Currency,
	})

	router := newRouter(deps{
		db:          pool,
		tokens:      auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		users:       users,
		catalog:     catalogSvc,
		carts:       cartSvc,
		orders:      orderSvc,
		corsOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("payment_mode", cfg.PaymentMode).Msg("mealmoment-api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newGateway(cfg config.Config) (payment.Gateway, func(), error) {
	if cfg.PaymentMode != config.PaymentGRPC {
		return payment.Simulated{}, func() {}, nil
	}
	c, err := payment.DialGRPC(cfg.PaymentAddr, cfg.PaymentCallTimeout)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}
