// Package source defines the items data source boundary and its HTTP
// implementation.
package source

import (
	"context"

	"github.com/tajrlabs/catalog/internal/models"
)

// FetchOptions filter which vendors' records a fetch returns.
type FetchOptions struct {
	LiveVendorsOnly        bool
	LiveVendorsOnlyTesting bool
}

// DataSource supplies raw catalog records and accepts catalog updates.
// FetchItems may fail; callers are expected to catch the error and degrade
// (the reader falls back to its cache).
type DataSource interface {
	FetchItems(ctx context.Context, opts FetchOptions) ([]models.RawRecord, error)
	UpdateItems(ctx context.Context, items []models.RawRecord, language string) error
}
