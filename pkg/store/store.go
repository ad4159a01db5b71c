// Package store defines the persistence port the wizard engine uses to keep
// in-progress answers between sessions. A store holds opaque blobs keyed by a
// session key; adapters live in the memory, file, and redis subpackages.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no blob exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store persists serialised form values.
type Store interface {
	// Load returns the blob saved under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob saved under key.
	Save(ctx context.Context, key string, blob []byte) error

	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ValidateKey rejects keys no adapter can address.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("store: key is required")
	}
	return nil
}
