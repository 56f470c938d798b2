package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("img"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) ObserveImageLookup(found bool) {
	if found {
		o.hits++
	} else {
		o.misses++
	}
}

func TestResolve_Priority(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"bare name wins", []string{"cake", "cake.jpg", "cake.png"}, "images/cake"},
		{"jpg before png", []string{"cake.png", "cake.jpg", "cake.jpeg"}, "images/cake.jpg"},
		{"png before jpeg", []string{"cake.jpeg", "cake.png"}, "images/cake.png"},
		{"jpeg last", []string{"cake.jpeg"}, "images/cake.jpeg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tc.files...)

			got := NewResolver(dir, "").Resolve(recipe.Some("cake"))
			if got == nil || *got != tc.want {
				t.Errorf("Resolve() = %v, want %q", got, tc.want)
			}
		})
	}
}

func TestResolve_Absent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "other.jpg")
	obs := &countingObserver{}
	r := NewResolver(dir, "/images/").WithObserver(obs)

	if got := r.Resolve(recipe.Null()); got != nil {
		t.Errorf("null name: got %q", *got)
	}
	if got := r.Resolve(recipe.Some("cake")); got != nil {
		t.Errorf("missing file: got %q", *got)
	}
	if got := r.Resolve(recipe.Some("../other")); got != nil {
		t.Errorf("traversal: got %q", *got)
	}
	if got := r.Resolve(recipe.Some("other")); got == nil || *got != "images/other.jpg" {
		t.Errorf("Resolve(other) = %v", got)
	}
	if obs.hits != 1 || obs.misses != 3 {
		t.Errorf("observer hits=%d misses=%d", obs.hits, obs.misses)
	}
}

func TestResolve_MissingDirectory(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "Food Images"), "")
	if r.DirExists() {
		t.Error("DirExists() = true for missing dir")
	}
	if got := r.Resolve(recipe.Some("cake")); got != nil {
		t.Errorf("got %q", *got)
	}
}
