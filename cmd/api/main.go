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
	"go.uber.org/multierr"

	"github.com/sosmarketplace/sos-board/api/routes"
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/config"
	"github.com/sosmarketplace/sos-board/pkg/db"
	"github.com/sosmarketplace/sos-board/pkg/instance"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/metrics"
	"github.com/sosmarketplace/sos-board/pkg/migrate"
	"github.com/sosmarketplace/sos-board/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured, rate limiting and idempotency replay disabled")
	}

	conn := dbClient.DB()
	vendorRepo := vendors.NewRepository(conn)
	itemRepo := items.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	marketplaceService, err := marketplace.NewService(marketplace.NewRepository(conn), time.Now)
	if err != nil {
		return err
	}
	registerService, err := vendors.NewRegisterService(vendors.RegisterServiceParams{
		TX:      dbClient,
		Vendors: vendorRepo,
		Items:   itemRepo,
		Logger:  logg,
		Now:     time.Now,
	})
	if err != nil {
		return err
	}
	vendorService, err := vendors.NewService(vendorRepo, itemRepo, orderRepo, dbClient, time.Now)
	if err != nil {
		return err
	}
	itemService, err := items.NewService(itemRepo, dbClient, time.Now)
	if err != nil {
		return err
	}
	orderService, err := orders.NewService(orderRepo)
	if err != nil {
		return err
	}

	var (
		httpMetrics    *metrics.HTTPMetrics
		metricsHandler http.Handler
	)
	if cfg.FeatureFlags.Metrics {
		reg := metrics.NewRegistry()
		httpMetrics = metrics.NewHTTPMetrics(reg)
		metricsHandler = metrics.Handler(reg)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"driver":   dbClient.Dialect(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			metricsHandler,
			marketplaceService,
			registerService,
			vendorService,
			itemService,
			orderService,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
