package train

import (
	"context"
	"fmt"
	"io"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/repository/table"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// Options controls model fitting.
type Options struct {
	MaxFeatures int
	Neighbors   int
}

// Report summarizes a training run.
type Report struct {
	Rows       int
	Vocabulary int
}

// Service fits the vectorizer and the neighbour index from a raw recipe table.
type Service struct {
	artifacts ArtifactWriter
	opts      Options
}

// New creates a training service. Zero options fall back to package defaults.
func New(artifacts ArtifactWriter, opts Options) *Service {
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = textvec.DefaultMaxFeatures
	}
	if opts.Neighbors <= 0 {
		opts.Neighbors = index.DefaultNeighbors
	}
	return &Service{artifacts: artifacts, opts: opts}
}

// Train reads a UTF-8 recipe CSV from raw and runs Fit on it.
func (s *Service) Train(ctx context.Context, raw io.Reader) (Report, error) {
	t, err := table.Read(raw)
	if err != nil {
		return Report{}, fmt.Errorf("read raw table: %w", err)
	}
	return s.Fit(ctx, t)
}

// Fit vectorizes every recipe, builds the index and writes the vectorizer,
// the index and the table, in that order. A failed write leaves earlier
// artifacts in place.
func (s *Service) Fit(ctx context.Context, t *recipe.Table) (Report, error) {
	docs := t.Combined()

	vec, err := textvec.Fit(docs, textvec.Config{MaxFeatures: s.opts.MaxFeatures, StopWords: true})
	if err != nil {
		return Report{}, fmt.Errorf("fit vectorizer: %w", err)
	}

	vectors := make([]textvec.Vector, len(docs))
	for i, d := range docs {
		vectors[i] = vec.Transform(d)
	}

	idx, err := index.Fit(vectors, vec.Len(), s.opts.Neighbors)
	if err != nil {
		return Report{}, fmt.Errorf("fit index: %w", err)
	}

	if err := s.artifacts.SaveVectorizer(ctx, vec); err != nil {
		return Report{}, fmt.Errorf("save vectorizer: %w", err)
	}
	if err := s.artifacts.SaveIndex(ctx, idx); err != nil {
		return Report{}, fmt.Errorf("save index: %w", err)
	}
	if err := s.artifacts.SaveTable(ctx, t); err != nil {
		return Report{}, fmt.Errorf("save table: %w", err)
	}

	return Report{Rows: t.Len(), Vocabulary: vec.Len()}, nil
}
