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

	"github.com/kailas-cloud/recipedex/internal/config"
	"github.com/kailas-cloud/recipedex/internal/db/storage"
	logpkg "github.com/kailas-cloud/recipedex/internal/logger"
	"github.com/kailas-cloud/recipedex/internal/metrics"
	"github.com/kailas-cloud/recipedex/internal/repository/artifact"
	"github.com/kailas-cloud/recipedex/internal/repository/images"
	chiTransport "github.com/kailas-cloud/recipedex/internal/transport/chi"
	"github.com/kailas-cloud/recipedex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/recipedex/internal/usecase/search"
	"github.com/kailas-cloud/recipedex/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, "api", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting recipedex server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create artifact store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Artifact store not ready", zap.Error(err))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Artifacts are loaded once; a missing one aborts startup.
	repo := artifact.New(store, artifact.Names{
		Vectorizer: cfg.Artifacts.Vectorizer,
		Index:      cfg.Artifacts.Index,
		Table:      cfg.Artifacts.Table,
	})
	cat, err := catalog.Load(ctx, repo, logger)
	if err != nil {
		logger.Fatal("Failed to load artifacts", zap.Error(err))
	}
	metrics.CatalogRecipes.Set(float64(cat.Len()))

	resolver := images.NewResolver(cfg.Images.Dir, cfg.Images.URLPrefix).WithObserver(metrics.ImageLookups{})
	if resolver.DirExists() {
		logger.Info("Image directory found", zap.String("dir", resolver.Dir()))
	} else {
		logger.Warn("Image directory not found, results will have no images", zap.String("dir", resolver.Dir()))
	}

	searchSvc := searchuc.NewInstrumentedSearcher(
		searchuc.New(cat.Vectorizer(), cat.Index(), cat.Table(), resolver),
		logger,
	)
	healthSvc := healthuc.New(cat, store, resolver)

	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.Options{
		DefaultResults: cfg.Search.DefaultResults,
		MaxResults:     cfg.Search.MaxResults,
		ImageDir:       cfg.Images.Dir,
		ImagePrefix:    cfg.Images.URLPrefix,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
