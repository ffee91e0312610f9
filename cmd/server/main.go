package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/adapter/mailer"
	natsAdapter "github.com/goodmenmotors/catalog-service/internal/adapter/messaging/nats"
	"github.com/goodmenmotors/catalog-service/internal/adapter/repository/cache"
	"github.com/goodmenmotors/catalog-service/internal/adapter/repository/memory"
	"github.com/goodmenmotors/catalog-service/internal/adapter/repository/mongodb"
	"github.com/goodmenmotors/catalog-service/internal/adapter/storage/s3"
	"github.com/goodmenmotors/catalog-service/internal/adapter/web"
	"github.com/goodmenmotors/catalog-service/internal/catalog/usecase"
	"github.com/goodmenmotors/catalog-service/internal/config"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
	"github.com/goodmenmotors/catalog-service/internal/platform/metrics"
	"github.com/goodmenmotors/catalog-service/internal/platform/tracer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Address != ""),
		zap.Bool("nats_enabled", cfg.NATS.URL != ""),
		zap.Bool("smtp_enabled", cfg.SMTP.Host != ""),
		zap.Bool("object_storage_enabled", cfg.Storage.Endpoint != ""),
	)

	ctx := context.Background()

	tp, err := tracer.InitTracer(ctx, tracer.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	var metricsManager *metrics.MetricsManager
	if cfg.Metrics.Enabled {
		metricsManager = metrics.NewMetricsManager("catalog")
	}

	store, closeStore, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open content store", zap.Error(err))
	}
	defer closeStore()

	if cfg.Redis.Address != "" {
		rdb, err := cache.NewRedisClient(ctx, &cfg.Redis, appLogger)
		if err != nil {
			appLogger.Warn("Facet cache disabled", zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			store = cache.NewFacetCache(store, rdb, cfg.Redis.FacetTTL, appLogger)
		}
	}

	assets, err := s3.NewAssetResolver(&cfg.Storage, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize asset resolver", zap.Error(err))
	}
	if err := assets.CheckBucket(ctx); err != nil {
		appLogger.Warn("Image bucket check failed", zap.Error(err))
	}

	var forwarders []usecase.InquiryForwarder
	if cfg.NATS.URL != "" {
		nc, err := natsAdapter.Connect(&cfg.NATS, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		publisher := natsAdapter.NewPublisher(nc, cfg.NATS.ContactSubject, appLogger)
		defer publisher.Close()
		forwarders = append(forwarders, publisher)
	}
	if cfg.SMTP.Host != "" {
		m, err := mailer.NewSMTPMailer(&cfg.SMTP, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to configure SMTP mailer", zap.Error(err))
		}
		forwarders = append(forwarders, m)
	}

	catalogUC := usecase.NewCatalogUsecase(store, appLogger, metricsManager, usecase.CatalogOptions{
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		LatestLimit:   cfg.Catalog.LatestLimit,
	})
	contactUC := usecase.NewContactUsecase(forwarders, appLogger, metricsManager)

	server, err := web.NewServer(catalogUC, contactUC, assets, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize HTTP server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: server.Routes(web.RouterOptions{
			RequestTimeout: cfg.HTTP.RequestTimeout,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			Metrics:        metricsManager,
			MetricsPath:    cfg.Metrics.Path,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("HTTP server stopped")
}

// openStore returns the configured content store and a function releasing it.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (usecase.ListingStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		repo, err := memory.LoadFile(cfg.Store.Fixtures, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Serving listings from fixture file", zap.String("path", cfg.Store.Fixtures))
		return repo, func() {}, nil
	default:
		client, err := mongodb.NewMongoDBConnection(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Successfully connected to MongoDB", zap.String("database", cfg.Mongo.Database))

		repo := mongodb.NewListingRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection, log)
		if err := mongodb.EnsureIndexes(ctx, repo.Collection()); err != nil {
			log.Warn("Failed to ensure listing indexes", zap.Error(err))
		}
		return repo, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Failed to disconnect MongoDB", zap.Error(err))
			}
		}, nil
	}
}
