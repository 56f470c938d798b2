package recipedex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/config"
	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/db/storage"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/domain/search/result"
	"github.com/kailas-cloud/recipedex/internal/repository/artifact"
	"github.com/kailas-cloud/recipedex/internal/repository/images"
	"github.com/kailas-cloud/recipedex/internal/repository/table"
	"github.com/kailas-cloud/recipedex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/recipedex/internal/usecase/search"
	"github.com/kailas-cloud/recipedex/internal/usecase/train"
)

const defaultReadinessTimeout = 10 * time.Second

// searchUseCase is the internal interface for search.
type searchUseCase interface {
	Search(ctx context.Context, query string, n int) ([]result.Result, error)
}

// loaded is the immutable state produced by Load.
type loaded struct {
	search searchUseCase
	health *healthuc.Service
}

// Client is the recipedex SDK entry point. Safe for concurrent use;
// Load swaps the served artifacts atomically.
type Client struct {
	store     db.Store
	artifacts *artifact.Repo
	trainer   *train.Service
	resolver  *images.Resolver
	state     atomic.Pointer[loaded]
	obs       *observer
}

// New creates a Client and connects to the artifact store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("recipedex: artifact store required (use WithDir or WithValkey)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recipedex: artifact store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	s, err := storage.Open(config.StorageConfig{
		Driver:    cfg.driver,
		Dir:       cfg.dir,
		Addrs:     cfg.addrs,
		Password:  cfg.password,
		KeyPrefix: cfg.keyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("recipedex: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := artifact.New(store, artifact.DefaultNames())
	c := &Client{
		store:     store,
		artifacts: repo,
		trainer:   train.New(repo, train.Options{MaxFeatures: cfg.maxFeatures}),
		obs:       obs,
	}
	if cfg.imageDir != "" {
		c.resolver = images.NewResolver(cfg.imageDir, cfg.imagePrefix)
	}
	return c
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks artifact store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Train fits the vectorizer and index from a raw recipe CSV and stores
// the artifacts. Served artifacts are unchanged until the next Load.
func (c *Client) Train(ctx context.Context, raw io.Reader, enc Encoding) (rep TrainReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("train", start, err) }()

	decoded, err := table.Decoder(raw, string(enc))
	if err != nil {
		return TrainReport{}, fmt.Errorf("train: %w", err)
	}
	r, err := c.trainer.Train(ctx, decoded)
	if err != nil {
		return TrainReport{}, fmt.Errorf("train: %w", err)
	}
	return TrainReport{Recipes: r.Rows, Vocabulary: r.Vocabulary}, nil
}

// Load reads the stored artifacts and starts serving them.
func (c *Client) Load(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	cat, err := catalog.Load(ctx, c.artifacts, zap.NewNop())
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	// Untyped nil when no image directory is configured: a nil *images.Resolver
	// inside the interface would not compare equal to nil.
	var resolver searchuc.ImageResolver = noImages{}
	var imageDir healthuc.ImageDirChecker
	if c.resolver != nil {
		resolver = c.resolver
		imageDir = c.resolver
	}

	c.state.Store(&loaded{
		search: searchuc.New(cat.Vectorizer(), cat.Index(), cat.Table(), resolver),
		health: healthuc.New(cat, c.store, imageDir),
	})
	return nil
}

// Search returns up to n recipes most similar to query, closest first.
// n <= 0 selects the default of 10.
func (c *Client) Search(ctx context.Context, query string, n int) (out []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	st := c.state.Load()
	if st == nil {
		return nil, ErrNotLoaded
	}
	results, err := st.search.Search(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromSearchResults(results), nil
}

type noImages struct{}

func (noImages) Resolve(recipe.Text) *string { return nil }

func fromSearchResults(rs []result.Result) []Result {
	out := make([]Result, len(rs))
	for i := range rs {
		r := &rs[i]
		out[i] = Result{
			Title:        r.Title(),
			Tags:         r.Tags(),
			Ingredients:  r.Ingredients(),
			Instructions: r.Instructions(),
			ImagePath:    r.ImagePath(),
			Confidence:   r.Confidence(),
		}
	}
	return out
}
