// Package file provides a store.Store that keeps one file per session key in
// a directory, so terminal sessions can be resumed after the process exits.
package file

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formwizard/pkg/store"
)

const fileExt = ".json"

// Config contains configuration options for the file store.
type Config struct {
	// Dir holds the session files; created on demand.
	Dir string

	// Perm applies to newly written files. Default: 0o600.
	Perm fs.FileMode
}

// Store implements store.Store on the local filesystem.
type Store struct {
	dir  string
	perm fs.FileMode
}

// New creates the directory if needed and returns a Store rooted there.
func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("file store: directory is required")
	}
	if cfg.Perm == 0 {
		cfg.Perm = 0o600
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("file store: create %s: %w", cfg.Dir, err)
	}
	return &Store{dir: cfg.Dir, perm: cfg.Perm}, nil
}

// Load reads the file for key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %q: %w", key, err)
	}
	return data, nil
}

// Save writes blob to a temp file in the same directory and renames it over
// the key's file so readers never observe a partial write.
func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("file store: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: write %q: %w", key, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: chmod %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("file store: commit %q: %w", key, err)
	}
	return nil
}

// Clear removes the file for key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: remove %q: %w", key, err)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// path encodes key so arbitrary session keys map to safe file names.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+fileExt)
}

// Compile-time interface check
var _ store.Store = (*Store)(nil)
