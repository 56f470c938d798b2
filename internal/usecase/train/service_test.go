package train

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/index"
	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// --- Mocks ---

type mockArtifacts struct {
	calls      []string
	vectorizer *textvec.Vectorizer
	index      *index.Index
	table      *recipe.Table
	failOn     string
}

func (m *mockArtifacts) save(name string) error {
	m.calls = append(m.calls, name)
	if m.failOn == name {
		return errors.New("disk full")
	}
	return nil
}

func (m *mockArtifacts) SaveVectorizer(_ context.Context, v *textvec.Vectorizer) error {
	m.vectorizer = v
	return m.save("vectorizer")
}

func (m *mockArtifacts) SaveIndex(_ context.Context, idx *index.Index) error {
	m.index = idx
	return m.save("index")
}

func (m *mockArtifacts) SaveTable(_ context.Context, t *recipe.Table) error {
	m.table = t
	return m.save("table")
}

const rawCSV = `Title,Ingredients,Instructions,Tags,Image_Name
Chocolate Cake,"flour, sugar, cocoa",Bake at 180C,dessert,choc-cake
Tomato Soup,"tomatoes, onion, basil",Simmer and blend,,tomato-soup
Lemon Tart,"lemons, butter, eggs",Chill overnight,dessert,
`

// --- Tests ---

func TestTrain_WritesArtifactsInOrder(t *testing.T) {
	art := &mockArtifacts{}
	svc := New(art, Options{})

	rep, err := svc.Train(context.Background(), strings.NewReader(rawCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"vectorizer", "index", "table"}
	if strings.Join(art.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, art.calls)
	}
	if rep.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", rep.Rows)
	}
	if rep.Vocabulary != art.vectorizer.Len() {
		t.Errorf("report vocabulary %d != vectorizer %d", rep.Vocabulary, art.vectorizer.Len())
	}
	if art.index.Len() != art.table.Len() {
		t.Errorf("index rows %d != table rows %d", art.index.Len(), art.table.Len())
	}
	if art.index.Dim() != art.vectorizer.Len() {
		t.Errorf("index dim %d != vocabulary %d", art.index.Dim(), art.vectorizer.Len())
	}
	if art.index.Neighbors() != index.DefaultNeighbors {
		t.Errorf("expected default neighbors, got %d", art.index.Neighbors())
	}
}

func TestTrain_NullsBecomeEmptyText(t *testing.T) {
	art := &mockArtifacts{}
	if _, err := New(art, Options{}).Train(context.Background(), strings.NewReader(rawCSV)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := art.table.At(1)
	if r.Tags().Valid() {
		t.Fatal("expected null tags for tomato soup")
	}
	if strings.Contains(r.Combined(), "nan") {
		t.Errorf("combined text leaks null marker: %q", r.Combined())
	}
}

func TestTrain_SelfQueryRanksFirst(t *testing.T) {
	art := &mockArtifacts{}
	if _, err := New(art, Options{}).Train(context.Background(), strings.NewReader(rawCSV)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for row, doc := range art.table.Combined() {
		got := art.index.Search(art.vectorizer.Transform(doc), 1)
		if len(got) != 1 || got[0].Row != row {
			t.Errorf("row %d: expected itself first, got %+v", row, got)
		}
	}
}

func TestTrain_MissingColumn(t *testing.T) {
	art := &mockArtifacts{}
	raw := "Title,Ingredients,Instructions,Image_Name\nA,b,c,d\n"

	_, err := New(art, Options{}).Train(context.Background(), strings.NewReader(raw))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "Tags") {
		t.Errorf("error should name the column: %v", err)
	}
	if len(art.calls) != 0 {
		t.Errorf("expected no writes, got %v", art.calls)
	}
}

func TestTrain_SaveErrorAborts(t *testing.T) {
	art := &mockArtifacts{failOn: "index"}

	_, err := New(art, Options{}).Train(context.Background(), strings.NewReader(rawCSV))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "save index") {
		t.Errorf("unexpected error: %v", err)
	}
	if strings.Join(art.calls, ",") != "vectorizer,index" {
		t.Errorf("expected table write to be skipped, got %v", art.calls)
	}
}

func TestTrain_MaxFeatures(t *testing.T) {
	art := &mockArtifacts{}
	if _, err := New(art, Options{MaxFeatures: 4}).Train(context.Background(), strings.NewReader(rawCSV)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.vectorizer.Len() != 4 {
		t.Errorf("expected 4 terms, got %d", art.vectorizer.Len())
	}
}

func TestTrain_EmptyTable(t *testing.T) {
	art := &mockArtifacts{}
	raw := "Title,Ingredients,Instructions,Tags,Image_Name\n"

	if _, err := New(art, Options{}).Train(context.Background(), strings.NewReader(raw)); err == nil {
		t.Fatal("expected error for empty table")
	}
	if len(art.calls) != 0 {
		t.Errorf("expected no writes, got %v", art.calls)
	}
}
