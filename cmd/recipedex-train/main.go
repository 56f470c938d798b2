// recipedex-train fits the TF-IDF vectorizer and the neighbour index from the
// raw recipe CSV and writes the artifacts the recipedex server loads.
//
// Usage:
//
//	recipedex-train [-raw Tagged_Food_Recipes.csv] [-encoding latin1]
//
// Everything else comes from config/<ENV>.yaml.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/config"
	"github.com/kailas-cloud/recipedex/internal/db/storage"
	logpkg "github.com/kailas-cloud/recipedex/internal/logger"
	"github.com/kailas-cloud/recipedex/internal/repository/artifact"
	"github.com/kailas-cloud/recipedex/internal/repository/table"
	"github.com/kailas-cloud/recipedex/internal/usecase/train"
	"github.com/kailas-cloud/recipedex/internal/version"
)

type flags struct {
	raw      string
	encoding string
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.raw, "raw", "", "raw recipe CSV (overrides trainer.raw_path)")
	flag.StringVar(&f.encoding, "encoding", "", "raw CSV encoding: latin1 or utf8 (overrides trainer.encoding)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if f.raw != "" {
		cfg.Trainer.RawPath = f.raw
	}
	if f.encoding != "" {
		cfg.Trainer.Encoding = f.encoding
	}

	logger, err := logpkg.NewLogger(env, "trainer", cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		cancel()
		logger.Fatal("Training failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()
	logger.Info("Starting recipedex trainer",
		zap.String("version", version.String()),
		zap.String("raw", cfg.Trainer.RawPath),
		zap.String("encoding", cfg.Trainer.Encoding),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	raw, err := os.Open(filepath.Clean(cfg.Trainer.RawPath))
	if err != nil {
		return fmt.Errorf("open raw table: %w", err)
	}
	defer func() { _ = raw.Close() }()

	decoded, err := table.Decoder(raw, cfg.Trainer.Encoding)
	if err != nil {
		return err
	}

	names := artifact.Names{
		Vectorizer: cfg.Artifacts.Vectorizer,
		Index:      cfg.Artifacts.Index,
		Table:      cfg.Artifacts.Table,
	}
	svc := train.New(artifact.New(store, names), train.Options{
		MaxFeatures: cfg.Trainer.MaxFeatures,
		Neighbors:   cfg.Trainer.Neighbors,
	})

	report, err := svc.Train(ctx, decoded)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Trainer.RawPath, err)
	}

	logger.Info("Artifacts written",
		zap.Strings("artifacts", []string{names.Vectorizer, names.Index, names.Table}),
		zap.Int("recipes", report.Rows),
		zap.Int("vocabulary", report.Vocabulary),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
