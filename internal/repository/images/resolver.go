// Package images maps recipe image names to files in the image directory.
package images

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// DefaultURLPrefix is the URL path under which images are served.
const DefaultURLPrefix = "images"

// Extensions are probed in this order after the bare name.
var Extensions = []string{"", ".jpg", ".png", ".jpeg"}

// Observer is notified of every lookup outcome.
type Observer interface {
	ObserveImageLookup(found bool)
}

// Resolver probes the image directory on every call; results are not cached.
type Resolver struct {
	dir       string
	urlPrefix string
	observer  Observer
}

// NewResolver creates a resolver for dir. urlPrefix defaults to DefaultURLPrefix.
func NewResolver(dir, urlPrefix string) *Resolver {
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &Resolver{dir: dir, urlPrefix: strings.Trim(urlPrefix, "/")}
}

// WithObserver attaches a lookup observer.
func (r *Resolver) WithObserver(o Observer) *Resolver {
	r.observer = o
	return r
}

// Dir returns the image directory.
func (r *Resolver) Dir() string { return r.dir }

// DirExists reports whether the image directory is present.
func (r *Resolver) DirExists() bool {
	info, err := os.Stat(r.dir)
	return err == nil && info.IsDir()
}

// Resolve returns the web-relative path of the first existing candidate, or nil.
func (r *Resolver) Resolve(name recipe.Text) *string {
	p := r.resolve(name)
	if r.observer != nil {
		r.observer.ObserveImageLookup(p != nil)
	}
	return p
}

func (r *Resolver) resolve(name recipe.Text) *string {
	if !name.Valid() {
		return nil
	}
	base := name.String()
	if base == "" || base == "." || strings.Contains(base, "..") || strings.ContainsAny(base, `/\`) {
		return nil
	}
	for _, ext := range Extensions {
		filename := base + ext
		if _, err := os.Stat(filepath.Join(r.dir, filename)); err == nil {
			p := path.Join(r.urlPrefix, filename)
			return &p
		}
	}
	return nil
}
