package catalog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// --- Mocks ---

type mockReader struct {
	vectorizer *textvec.Vectorizer
	index      *index.Index
	table      *recipe.Table
	err        error
	failOn     string
}

func (m *mockReader) LoadVectorizer(_ context.Context) (*textvec.Vectorizer, error) {
	if m.failOn == "vectorizer" {
		return nil, m.err
	}
	return m.vectorizer, nil
}

func (m *mockReader) LoadIndex(_ context.Context) (*index.Index, error) {
	if m.failOn == "index" {
		return nil, m.err
	}
	return m.index, nil
}

func (m *mockReader) LoadTable(_ context.Context) (*recipe.Table, error) {
	if m.failOn == "table" {
		return nil, m.err
	}
	return m.table, nil
}

func row(title string) recipe.Recipe {
	return recipe.New(recipe.Some(title), recipe.Some("flour"), recipe.Some("bake"), recipe.Null(), recipe.Null())
}

func fitted(t *testing.T, titles ...string) *mockReader {
	t.Helper()
	rows := make([]recipe.Recipe, len(titles))
	for i, title := range titles {
		rows[i] = row(title)
	}
	tbl := recipe.NewTable(nil, rows)
	v, err := textvec.Fit(tbl.Combined(), textvec.DefaultConfig())
	if err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}
	vecs := make([]textvec.Vector, tbl.Len())
	for i, d := range tbl.Combined() {
		vecs[i] = v.Transform(d)
	}
	idx, err := index.Fit(vecs, v.Len(), 0)
	if err != nil {
		t.Fatalf("fit index: %v", err)
	}
	return &mockReader{vectorizer: v, index: idx, table: tbl}
}

// --- Tests ---

func TestLoad_Success(t *testing.T) {
	r := fitted(t, "Chocolate Cake", "Tomato Soup")

	c, err := Load(context.Background(), r, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 recipes, got %d", c.Len())
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("expected healthy catalog, got %v", err)
	}
}

func TestLoad_MissingArtifact(t *testing.T) {
	for _, name := range []string{"vectorizer", "index", "table"} {
		t.Run(name, func(t *testing.T) {
			r := fitted(t, "Chocolate Cake")
			r.failOn = name
			r.err = domain.ErrArtifactNotFound

			core, logs := observer.New(zap.ErrorLevel)
			_, err := Load(context.Background(), r, zap.New(core))
			if !errors.Is(err, domain.ErrArtifactNotFound) {
				t.Fatalf("expected ErrArtifactNotFound, got %v", err)
			}
			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 error log, got %d", len(entries))
			}
			if got := entries[0].ContextMap()["artifact"]; got != name {
				t.Errorf("expected artifact=%q, got %v", name, got)
			}
		})
	}
}

func TestLoad_DimensionMismatch(t *testing.T) {
	a := fitted(t, "Chocolate Cake", "Tomato Soup")
	b := fitted(t, "Lemon")
	a.index = b.index

	_, err := Load(context.Background(), a, zap.NewNop())
	if !errors.Is(err, domain.ErrArtifactMismatch) {
		t.Fatalf("expected ErrArtifactMismatch, got %v", err)
	}
}

func TestLoad_RowCountMismatchWarns(t *testing.T) {
	r := fitted(t, "Chocolate Cake", "Tomato Soup")
	r.table = recipe.NewTable(nil, []recipe.Recipe{row("Chocolate Cake")})

	core, logs := observer.New(zap.WarnLevel)
	c, err := Load(context.Background(), r, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 recipe, got %d", c.Len())
	}
	if logs.FilterMessageSnippet("row counts differ").Len() != 1 {
		t.Error("expected row count warning")
	}
}
