package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/search/result"
)

// DefaultResults is the number of results returned when n is not positive.
const DefaultResults = 10

// Service answers recipe queries from the loaded artifacts.
type Service struct {
	vectorizer Vectorizer
	index      NeighborIndex
	table      RecipeTable
	images     ImageResolver
}

// New creates a search service.
func New(vectorizer Vectorizer, idx NeighborIndex, table RecipeTable, images ImageResolver) *Service {
	return &Service{vectorizer: vectorizer, index: idx, table: table, images: images}
}

// Search returns up to n recipes most similar to query, closest first.
// A blank query returns no results without touching the vectorizer.
// Internal failures, panics included, are reported as domain.ErrSearchFailed.
func (s *Service) Search(_ context.Context, query string, n int) (results []result.Result, err error) {
	if strings.TrimSpace(query) == "" {
		return []result.Result{}, nil
	}
	if n <= 0 {
		n = DefaultResults
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%w: %v", domain.ErrSearchFailed, r)
		}
	}()

	q := s.vectorizer.Transform(query)
	neighbors := s.index.Search(q, n)

	results = make([]result.Result, 0, len(neighbors))
	for _, nb := range neighbors {
		// Index and table may disagree after a partial retrain.
		if nb.Row >= s.table.Len() {
			continue
		}
		rec, ok := s.table.At(nb.Row)
		if !ok {
			continue
		}
		results = append(results, result.New(
			rec.Title().Or(result.UnknownTitle),
			rec.Tags().Or(result.NoTags),
			rec.Ingredients().Or(result.NoIngredients),
			rec.Instructions().Or(result.NoInstructions),
			s.images.Resolve(rec.ImageName()),
			result.Confidence(nb.Distance),
		))
	}
	return results, nil
}
