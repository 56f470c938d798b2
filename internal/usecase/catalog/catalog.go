// Package catalog holds the artifacts a query service answers from.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// Catalog is the read-only set of artifacts loaded at startup.
// Safe for concurrent use.
type Catalog struct {
	vectorizer *textvec.Vectorizer
	index      *index.Index
	table      *recipe.Table
}

// New assembles a catalog from already fitted artifacts and checks that
// they belong together.
func New(v *textvec.Vectorizer, idx *index.Index, t *recipe.Table) (*Catalog, error) {
	if idx.Dim() != v.Len() {
		return nil, fmt.Errorf("%w: index dimension %d, vocabulary size %d",
			domain.ErrArtifactMismatch, idx.Dim(), v.Len())
	}
	return &Catalog{vectorizer: v, index: idx, table: t}, nil
}

// Load reads all three artifacts. Any missing or unreadable artifact aborts.
func Load(ctx context.Context, r ArtifactReader, logger *zap.Logger) (*Catalog, error) {
	v, err := r.LoadVectorizer(ctx)
	if err != nil {
		logger.Error("Failed to load artifact", zap.String("artifact", "vectorizer"), zap.Error(err))
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}
	idx, err := r.LoadIndex(ctx)
	if err != nil {
		logger.Error("Failed to load artifact", zap.String("artifact", "index"), zap.Error(err))
		return nil, fmt.Errorf("load index: %w", err)
	}
	t, err := r.LoadTable(ctx)
	if err != nil {
		logger.Error("Failed to load artifact", zap.String("artifact", "table"), zap.Error(err))
		return nil, fmt.Errorf("load table: %w", err)
	}

	c, err := New(v, idx, t)
	if err != nil {
		return nil, err
	}

	if idx.Len() != t.Len() {
		logger.Warn("Index and table row counts differ, extra rows are skipped",
			zap.Int("index_rows", idx.Len()),
			zap.Int("table_rows", t.Len()),
		)
	}

	logger.Info("Catalog loaded",
		zap.Int("recipes", t.Len()),
		zap.Int("vocabulary", v.Len()),
		zap.Int("index_rows", idx.Len()),
	)
	return c, nil
}

// Vectorizer returns the fitted vectorizer.
func (c *Catalog) Vectorizer() *textvec.Vectorizer { return c.vectorizer }

// Index returns the neighbour index.
func (c *Catalog) Index() *index.Index { return c.index }

// Table returns the recipe table.
func (c *Catalog) Table() *recipe.Table { return c.table }

// Len returns the number of recipes.
func (c *Catalog) Len() int { return c.table.Len() }

// Ping reports whether the catalog has something to search.
func (c *Catalog) Ping(_ context.Context) error {
	if c.table.Len() == 0 || c.index.Len() == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}
