// Package fs stores trained artifacts as files in a directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kailas-cloud/recipedex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps one file per key inside dir.
type Store struct {
	dir string
}

// NewStore creates a directory-backed store. The directory is created on first Set.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the artifact directory.
func (s *Store) Dir() string { return s.dir }

// Get reads the file named key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpRead, Err: err}
	}
	return data, nil
}

// Set writes value to the file named key, replacing it atomically.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+".*")
	if err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	return nil
}

// Ping checks that the directory is reachable. A missing directory is not an error.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if !info.IsDir() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%s is not a directory", s.dir)}
	}
	return nil
}

// WaitForReady returns immediately; the filesystem has no warm-up.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", &db.Error{Op: db.OpRead, Err: fmt.Errorf("invalid key %q", key)}
	}
	return filepath.Join(s.dir, key), nil
}
