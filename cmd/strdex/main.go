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

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/config"
	logpkg "github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/metrics"
	"github.com/kailas-cloud/strdex/internal/repository"
	chiTransport "github.com/kailas-cloud/strdex/internal/transport/chi"
	batchuc "github.com/kailas-cloud/strdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/strdex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/strdex/internal/usecase/query"
	strsvc "github.com/kailas-cloud/strdex/internal/usecase/strings"
	"github.com/kailas-cloud/strdex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting strdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.Database, cfg.Storage.KeyPrefix, logger)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close record store", zap.Error(err))
		}
	}()
	logger.Info("Record store ready", zap.String("driver", cfg.Database.Driver))

	metrics.RegisterQueryMetrics()

	batchSvc, err := batchuc.New(store.Records, cfg.Batch.Workers)
	if err != nil {
		logger.Fatal("Failed to create batch service", zap.Error(err))
	}
	defer batchSvc.Release()
	batchSvc.WithMaxSize(cfg.Batch.MaxSize)

	server := chiTransport.NewServer(
		strsvc.New(store.Records),
		batchSvc,
		queryuc.New(store.Records),
		healthuc.New(store.Records),
	)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
