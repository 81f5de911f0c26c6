package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kursadbilgin/fulfillment-bridge/internal/config"
	"github.com/kursadbilgin/fulfillment-bridge/internal/geo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/handler"
	"github.com/kursadbilgin/fulfillment-bridge/internal/infra/postgresql"
	"github.com/kursadbilgin/fulfillment-bridge/internal/infra/postgresql/migrations"
	infraredis "github.com/kursadbilgin/fulfillment-bridge/internal/infra/redis"
	"github.com/kursadbilgin/fulfillment-bridge/internal/intigo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/jobs"
	"github.com/kursadbilgin/fulfillment-bridge/internal/observability"
	"github.com/kursadbilgin/fulfillment-bridge/internal/repository"
	"github.com/kursadbilgin/fulfillment-bridge/internal/service"
	"github.com/kursadbilgin/fulfillment-bridge/internal/shopify"
	"github.com/kursadbilgin/fulfillment-bridge/internal/transport"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// .env is optional; deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgresql.NewPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	metrics := observability.NewMetrics()

	courier, err := intigo.NewClient(cfg.IntigoBaseURL, cfg.IntigoAPIKey)
	if err != nil {
		logger.Fatal("intigo client initialization failed", zap.Error(err))
	}

	store, err := shopify.NewClient(cfg.ShopifyShop, cfg.ShopifyAdminToken)
	if err != nil {
		logger.Fatal("shopify client initialization failed", zap.Error(err))
	}

	catalog, err := geo.NewCache(courier)
	if err != nil {
		logger.Fatal("region catalog initialization failed", zap.Error(err))
	}
	catalog.SetMetrics(metrics)

	resolver, err := geo.NewResolver(catalog)
	if err != nil {
		logger.Fatal("geography resolver initialization failed", zap.Error(err))
	}

	guard, err := infraredis.NewRedisGuard(rdb)
	if err != nil {
		logger.Fatal("order guard initialization failed", zap.Error(err))
	}

	if cfg.ShopifyWebhookSecret == "" {
		logger.Warn("webhook secret is empty, signature verification is disabled")
	}
	verifier := shopify.NewVerifier(cfg.ShopifyWebhookSecret)

	pipeline, err := service.NewFulfillmentService(
		verifier,
		resolver,
		courier,
		store,
		guard,
		repository.NewGormJournalRepo(db),
		service.PickupOrigin{
			Address:     cfg.PickupAddress,
			City:        cfg.PickupCity,
			SubDivision: cfg.PickupSubDivision,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("fulfillment service initialization failed", zap.Error(err))
	}
	pipeline.SetMetrics(metrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(requestid.New())
	app.Use(metrics.HTTPMiddleware())

	if err := handler.RegisterWebhookRoutes(app, pipeline, metrics); err != nil {
		logger.Fatal("webhook route registration failed", zap.Error(err))
	}
	if err := handler.RegisterFulfillmentRoutes(app, pipeline); err != nil {
		logger.Fatal("fulfillment route registration failed", zap.Error(err))
	}
	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	if cfg.CatalogWarmCron != "" {
		warmer, err := jobs.NewCatalogWarmer(catalog, cfg.CatalogWarmCron, logger)
		if err != nil {
			logger.Fatal("catalog warmer initialization failed", zap.Error(err))
		}
		if err := warmer.Start(); err != nil {
			logger.Fatal("catalog warmer start failed", zap.Error(err))
		}
		defer warmer.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		logger.Info("fulfillment-bridge api started", zap.Int("port", cfg.APIPort))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("fulfillment-bridge api exited", zap.Error(err))
	}
	logger.Info("fulfillment-bridge api stopped")
}
