package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/election-result-api/internal/repository"
	"github.com/noah-isme/election-result-api/internal/router"
	"github.com/noah-isme/election-result-api/internal/service"
	"github.com/noah-isme/election-result-api/pkg/cache"
	"github.com/noah-isme/election-result-api/pkg/config"
	"github.com/noah-isme/election-result-api/pkg/database"
	"github.com/noah-isme/election-result-api/pkg/logger"
)

// @title Election Result API
// @version 1.0.0
// @description Record keeping for collated election results
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		logr.Fatal("invalid mongo configuration", zap.Error(err))
	}
	// The server starts whether or not the store answers; the driver keeps retrying server selection.
	if err := database.Ping(ctx, client, cfg.Mongo.Timeout); err != nil {
		logr.Error("error connecting to document store", zap.String("uri", cfg.Mongo.URI), zap.Error(err))
	} else {
		logr.Info("database connection was established", zap.String("database", cfg.Mongo.Database))
	}

	metrics := service.NewMetricsService()
	cacheSvc := newTotalsCache(cfg, metrics, logr)

	repo := repository.NewElectionResultRepository(database.Collection(client, cfg.Mongo), cfg.Mongo.Timeout)
	results := service.NewElectionResultService(repo, cacheSvc, metrics, validator.New(), logr,
		service.ElectionResultOptions{LegacyNotFound: cfg.NotFound.Legacy})

	engine := router.New(router.Dependencies{
		Config:  cfg,
		Logger:  logr,
		Metrics: metrics,
		Results: results,
		Exports: service.NewExportService(results, logr),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logr.Error("mongo disconnect", zap.Error(err))
	}
}

// newTotalsCache returns a disabled cache unless caching is switched on and Redis answers.
func newTotalsCache(cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Totals.CacheEnabled {
		return service.NewCacheService(nil, metrics, cfg.Totals.CacheTTL, logr, false)
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("totals cache disabled", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Totals.CacheTTL, logr, false)
	}
	repo := repository.NewCacheRepository(client, "election:")
	return service.NewCacheService(repo, metrics, cfg.Totals.CacheTTL, logr, true)
}
