// Package storage provides the local key-value store the client keeps its
// session in. Values are opaque bytes; callers own the encoding.
package storage

import (
	"context"
	"errors"
	"fmt"

	"taskcli/internal/config"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small persistent key-value store.
// Each call is independent; there are no transactions across calls.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Open returns the store selected by kind, rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case config.StorageFile, "":
		return NewFileStore(dir), nil
	case config.StorageSQLite:
		return OpenSQLite(SQLitePath(dir))
	default:
		return nil, fmt.Errorf("unknown storage kind: %q", kind)
	}
}
