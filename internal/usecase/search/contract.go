package search

import (
	"context"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/domain/search/result"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// Vectorizer turns query text into a TF-IDF vector.
type Vectorizer interface {
	Transform(text string) textvec.Vector
}

// NeighborIndex finds the rows closest to a query vector.
type NeighborIndex interface {
	Search(q textvec.Vector, k int) []index.Neighbor
}

// RecipeTable maps index rows to recipe metadata.
type RecipeTable interface {
	Len() int
	At(i int) (recipe.Recipe, bool)
}

// ImageResolver maps an image name to a servable path.
type ImageResolver interface {
	Resolve(name recipe.Text) *string
}

// Searcher is implemented by Service and InstrumentedSearcher.
type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]result.Result, error)
}
