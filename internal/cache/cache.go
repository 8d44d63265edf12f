// Package cache provides the local blob cache backing the catalog reader:
// raw-record snapshots, stock availability, and diagnostic artifacts.
package cache

import (
	"context"
	"errors"
)

// Cache keys used by the catalog reader.
const (
	KeyRawItems      = "items/raw"
	KeyStockAreas    = "items/stock"
	KeyUncategorized = "items/uncategorized"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("cache: key not found")

// Store is a key to serialized-blob store with a single-writer discipline.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Has(ctx context.Context, key string) (bool, error)
	Close() error
}
