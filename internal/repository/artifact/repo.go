// Package artifact persists the vectorizer, the neighbour index and the recipe
// table produced by the trainer.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/repository/table"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// Names holds the storage keys of the three artifacts.
type Names struct {
	Vectorizer string
	Index      string
	Table      string
}

// DefaultNames returns the default artifact keys.
func DefaultNames() Names {
	return Names{
		Vectorizer: "vectorizer.json.gz",
		Index:      "nn_model.json.gz",
		Table:      "recipes_meta.csv",
	}
}

// Repo reads and writes artifacts through a key/value store.
type Repo struct {
	store db.KVStore
	names Names
}

// New creates an artifact repository.
func New(store db.KVStore, names Names) *Repo {
	return &Repo{store: store, names: names}
}

// Names returns the artifact keys.
func (r *Repo) Names() Names { return r.names }

// SaveVectorizer stores the fitted vectorizer.
func (r *Repo) SaveVectorizer(ctx context.Context, v *textvec.Vectorizer) error {
	return r.saveJSON(ctx, r.names.Vectorizer, v)
}

// SaveIndex stores the fitted neighbour index.
func (r *Repo) SaveIndex(ctx context.Context, idx *index.Index) error {
	return r.saveJSON(ctx, r.names.Index, idx)
}

// SaveTable stores the augmented recipe table.
func (r *Repo) SaveTable(ctx context.Context, t *recipe.Table) error {
	var buf bytes.Buffer
	if err := table.Write(&buf, t); err != nil {
		return fmt.Errorf("encode %s: %w", r.names.Table, err)
	}
	if err := r.store.Set(ctx, r.names.Table, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", r.names.Table, err)
	}
	return nil
}

// LoadVectorizer reads the fitted vectorizer.
func (r *Repo) LoadVectorizer(ctx context.Context) (*textvec.Vectorizer, error) {
	var v textvec.Vectorizer
	if err := r.loadJSON(ctx, r.names.Vectorizer, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadIndex reads the fitted neighbour index.
func (r *Repo) LoadIndex(ctx context.Context) (*index.Index, error) {
	var idx index.Index
	if err := r.loadJSON(ctx, r.names.Index, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// LoadTable reads the augmented recipe table.
func (r *Repo) LoadTable(ctx context.Context) (*recipe.Table, error) {
	data, err := r.get(ctx, r.names.Table)
	if err != nil {
		return nil, err
	}
	t, err := table.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.names.Table, err)
	}
	return t, nil
}

func (r *Repo) saveJSON(ctx context.Context, key string, v any) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *Repo) loadJSON(ctx context.Context, key string, v any) error {
	data, err := r.get(ctx, key)
	if err != nil {
		return err
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decompress %s: %w", key, err)
	}
	defer func() { _ = zr.Close() }()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repo) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, key)
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}
