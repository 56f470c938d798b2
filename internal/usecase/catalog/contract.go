package catalog

import (
	"context"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// ArtifactReader loads the fitted artifacts.
type ArtifactReader interface {
	LoadVectorizer(ctx context.Context) (*textvec.Vectorizer, error)
	LoadIndex(ctx context.Context) (*index.Index, error)
	LoadTable(ctx context.Context) (*recipe.Table, error)
}
