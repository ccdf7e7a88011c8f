package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/seefood/backend/config"
	httpDelivery "github.com/seefood/backend/internal/delivery/http"
	"github.com/seefood/backend/internal/domain"
	"github.com/seefood/backend/internal/infrastructure/cache"
	"github.com/seefood/backend/internal/infrastructure/catalogapi"
	"github.com/seefood/backend/internal/infrastructure/docstore"
	"github.com/seefood/backend/internal/pkg/logger"
	"github.com/seefood/backend/internal/usecase"
)

func main() {
	// .env is a development convenience; absence is not an error
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	logger.L.Info("starting seefood backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.String("catalog_base_url", cfg.Catalog.BaseURL),
	)

	ctx := context.Background()

	cacheRepo, err := newCache(ctx, cfg)
	if err != nil {
		logger.L.Fatal("failed to initialize cache", zap.Error(err))
	}

	catalogClient := catalogapi.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.FetchLimit, cfg.RateLimit.Catalog)
	catalogView := usecase.NewCatalogView(catalogClient, cfg.Catalog.PageSize)
	catalogView.SetSnapshotTTL(cfg.Catalog.SnapshotTTL)
	scanner := usecase.NewScanner(catalogView, cfg.Scan.Cooldown)

	profiles := usecase.NewProfileService(docstore.NewMemoryPreferences(), cacheRepo, cfg.Cache.TTL)
	reviews := usecase.NewReviewService(docstore.NewMemoryComments(), docstore.NewMemoryRatings())
	identity := usecase.NewIdentityService(docstore.NewMemoryAuth())

	// Warm the catalog; a failure here is not fatal, the first request
	// retries the load.
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := catalogView.Load(warmCtx); err != nil {
		logger.L.Warn("initial catalog load failed, continuing without snapshot", zap.Error(err))
	} else {
		logger.L.Info("catalog snapshot loaded", zap.Int("products", catalogView.FilteredCount()))
	}
	cancel()

	handler := httpDelivery.NewHandler(catalogView, scanner, profiles, reviews, identity)
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("forced shutdown", zap.Error(err))
	}
	logger.L.Info("server stopped")
}

// newCache selects the cache backend from configuration.
func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, error) {
	switch cfg.Cache.Type {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	default:
		return cache.NewMemoryCache(), nil
	}
}
