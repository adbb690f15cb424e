package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockmasterhq/stockmaster-backend/api/controllers"
	apimiddleware "github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/api/routes"
	authsvc "github.com/stockmasterhq/stockmaster-backend/internal/auth"
	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/internal/locations"
	"github.com/stockmasterhq/stockmaster-backend/internal/products"
	"github.com/stockmasterhq/stockmaster-backend/internal/users"
	"github.com/stockmasterhq/stockmaster-backend/pkg/auth/session"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
	"github.com/stockmasterhq/stockmaster-backend/pkg/metrics"
	"github.com/stockmasterhq/stockmaster-backend/pkg/migrate"
	"github.com/stockmasterhq/stockmaster-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "stockmaster-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api terminated", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	database, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, database); err != nil {
		return err
	}

	cache, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	sessions, err := session.NewManager(cache, cfg.JWT)
	if err != nil {
		return err
	}

	conn := database.DB()
	usersRepo := users.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	inventoryRepo := inventory.NewRepository(conn)
	locationsRepo := locations.NewRepository(conn)

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		return err
	}
	productsService, err := products.NewService(database, productsRepo)
	if err != nil {
		return err
	}
	inventoryService, err := inventory.NewService(database, inventoryRepo, productsRepo)
	if err != nil {
		return err
	}
	locationsService, err := locations.NewService(database, locationsRepo, inventoryService)
	if err != nil {
		return err
	}
	authService, err := authsvc.NewService(usersRepo, sessions, cfg.JWT, users.IsNotFound)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.New(routes.Deps{
		Config: cfg,
		Logger: logg,

		Authenticator: apimiddleware.NewAuthenticator(cfg.JWT, sessions, logg),
		LoginLimiter:  apimiddleware.NewLoginRateLimiter(cache, cfg.AuthRateLimit, logg),
		HTTPMetrics:   httpMetrics,
		Registry:      registry,

		Health:    controllers.NewHealthController(database, cache, logg),
		Auth:      controllers.NewAuthController(authService, logg),
		Users:     controllers.NewUsersController(usersService, logg),
		Products:  controllers.NewProductsController(productsService, logg),
		Inventory: controllers.NewInventoryController(inventoryService, logg),
		Godowns:   controllers.NewGodownsController(locationsService, logg),
		Shops:     controllers.NewShopsController(locationsService, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
