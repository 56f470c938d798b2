package train

import (
	"context"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// ArtifactWriter persists the fitted artifacts.
type ArtifactWriter interface {
	SaveVectorizer(ctx context.Context, v *textvec.Vectorizer) error
	SaveIndex(ctx context.Context, idx *index.Index) error
	SaveTable(ctx context.Context, t *recipe.Table) error
}
