package recipedex

import (
	"errors"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingColumn    = domain.ErrMissingColumn
	ErrArtifactNotFound = domain.ErrArtifactNotFound
	ErrArtifactMismatch = domain.ErrArtifactMismatch
	ErrSearchFailed     = domain.ErrSearchFailed
)

// ErrNotLoaded is returned by Search before a successful Load.
var ErrNotLoaded = errors.New("recipedex: artifacts not loaded")
