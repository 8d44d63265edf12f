// Package reader orchestrates the catalog read cycle: fetch raw records (or
// fall back to the cache), parse and classify them, sort and partition by
// vendor, and write the side caches.
package reader

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/tajrlabs/catalog/internal/cache"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/parser"
	"github.com/tajrlabs/catalog/internal/source"
	"go.uber.org/zap"
)

// Options control one read cycle.
type Options struct {
	// Cached forces an explicit read from the local raw-record cache.
	Cached bool
	// AllowUncategorized keeps records that no domain tier matched.
	AllowUncategorized bool
	// LiveVendorsOnly and LiveVendorsOnlyTesting are passed through to the
	// data source.
	LiveVendorsOnly        bool
	LiveVendorsOnlyTesting bool
}

// Result is the outcome of a read cycle over canonical attributes. An empty
// result is not an error; FromCache and the failure counts are meaningful
// signals for the caller.
type Result struct {
	ReadID        string               `json:"read_id"`
	Attrs         []*models.Attributes `json:"items"`
	Splits        []models.VendorSplit `json:"splits"`
	FromCache     bool                 `json:"from_cache"`
	ParseFailures int                  `json:"parse_failures"`
	Uncategorized int                  `json:"uncategorized"`
}

// ItemsResult is the outcome of a read cycle materialized as Items.
type ItemsResult struct {
	ReadID        string               `json:"read_id"`
	Items         []*models.Item       `json:"items"`
	Splits        []models.VendorSplit `json:"splits"`
	FromCache     bool                 `json:"from_cache"`
	ParseFailures int                  `json:"parse_failures"`
	Uncategorized int                  `json:"uncategorized"`
}

// Reader reads, normalizes, and partitions the catalog.
type Reader struct {
	source source.DataSource
	store  cache.Store
	parser *parser.Parser
	logger *zap.Logger // optional; when set, logs cycle events
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets a logger for read-cycle events.
func WithLogger(l *zap.Logger) ReaderOption {
	return func(r *Reader) { r.logger = l }
}

// New creates a reader with the given dependencies.
func New(src source.DataSource, store cache.Store, p *parser.Parser, opts ...ReaderOption) *Reader {
	r := &Reader{source: src, store: store, parser: p}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadAttributes runs one read cycle and returns the canonical attributes with
// their vendor splits. Per-record parse failures and excluded uncategorized
// records are counted on the result, never fatal.
func (r *Reader) ReadAttributes(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{ReadID: uuid.New().String()}

	records, fromCache := r.fetchRaw(ctx, opts)
	res.FromCache = fromCache

	var kept []*models.Attributes
	var uncategorized []*models.Attributes
	for _, record := range records {
		attrs, err := r.parser.Parse(record)
		if err != nil {
			res.ParseFailures++
			if r.logger != nil {
				r.logger.Debug("record dropped", zap.String("read_id", res.ReadID), zap.Error(err))
			}
			continue
		}
		if !opts.AllowUncategorized && !attrs.Categorized() {
			uncategorized = append(uncategorized, attrs)
			continue
		}
		kept = append(kept, attrs)
	}
	res.Uncategorized = len(uncategorized)
	if len(uncategorized) > 0 {
		r.writeUncategorizedLog(ctx, uncategorized)
	}

	res.Attrs, res.Splits = SortAndSplit(kept)

	if r.logger != nil {
		r.logger.Info("catalog read complete",
			zap.String("read_id", res.ReadID),
			zap.Int("items", len(res.Attrs)),
			zap.Int("splits", len(res.Splits)),
			zap.Int("parse_failures", res.ParseFailures),
			zap.Int("uncategorized", res.Uncategorized),
			zap.Bool("from_cache", res.FromCache),
		)
	}
	return res, nil
}

// ReadItems runs one read cycle materialized as Items: each item gets a
// sequential position index matching the sorted order, and the id to
// in-stock-areas side cache is refreshed for stock-filtering collaborators.
// Item reads always target live vendors.
func (r *Reader) ReadItems(ctx context.Context, opts Options) (*ItemsResult, error) {
	opts.LiveVendorsOnly = true
	res, err := r.ReadAttributes(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := make([]*models.Item, len(res.Attrs))
	for i, attrs := range res.Attrs {
		item := models.NewItem(attrs)
		item.PositionIndex = i
		items[i] = item
	}
	r.writeStockCache(ctx, items)

	return &ItemsResult{
		ReadID:        res.ReadID,
		Items:         items,
		Splits:        res.Splits,
		FromCache:     res.FromCache,
		ParseFailures: res.ParseFailures,
		Uncategorized: res.Uncategorized,
	}, nil
}

// ReadStockAreas returns the cached id to in-stock-areas mapping written by
// the last ReadItems cycle. A missing cache yields an empty map.
func (r *Reader) ReadStockAreas(ctx context.Context) (map[string][]string, error) {
	blob, err := r.store.Get(ctx, cache.KeyStockAreas)
	if errors.Is(err, cache.ErrNotFound) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	stock := make(map[string][]string)
	if err := json.Unmarshal(blob, &stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// fetchRaw acquires raw records. An explicit cache read, a fetch failure, or
// an empty live result all resolve to the local cache; only a successful live
// fetch writes through to it. The returned flag reports cache-derived data.
func (r *Reader) fetchRaw(ctx context.Context, opts Options) ([]models.RawRecord, bool) {
	if opts.Cached {
		return r.readRawCache(ctx), true
	}

	records, err := r.source.FetchItems(ctx, source.FetchOptions{
		LiveVendorsOnly:        opts.LiveVendorsOnly,
		LiveVendorsOnlyTesting: opts.LiveVendorsOnlyTesting,
	})
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("source fetch failed, falling back to cache", zap.Error(err))
		}
		return r.readRawCache(ctx), true
	}
	if len(records) == 0 {
		if r.logger != nil {
			r.logger.Warn("source returned no records, falling back to cache")
		}
		return r.readRawCache(ctx), true
	}

	r.writeRawCache(ctx, records)
	return records, false
}

func (r *Reader) readRawCache(ctx context.Context) []models.RawRecord {
	blob, err := r.store.Get(ctx, cache.KeyRawItems)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) && r.logger != nil {
			r.logger.Warn("raw cache read failed", zap.Error(err))
		}
		return nil
	}
	var records []models.RawRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		if r.logger != nil {
			r.logger.Warn("raw cache decode failed", zap.Error(err))
		}
		return nil
	}
	return records
}

// writeRawCache is best-effort; a failure never aborts the read.
func (r *Reader) writeRawCache(ctx context.Context, records []models.RawRecord) {
	blob, err := json.Marshal(records)
	if err == nil {
		err = r.store.Put(ctx, cache.KeyRawItems, blob)
	}
	if err != nil && r.logger != nil {
		r.logger.Warn("raw cache write failed", zap.Error(err))
	}
}

// writeStockCache is best-effort; a failure never aborts the read.
func (r *Reader) writeStockCache(ctx context.Context, items []*models.Item) {
	stock := make(map[string][]string, len(items))
	for _, item := range items {
		stock[item.ID] = item.InStockAreas
	}
	blob, err := json.Marshal(stock)
	if err == nil {
		err = r.store.Put(ctx, cache.KeyStockAreas, blob)
	}
	if err != nil && r.logger != nil {
		r.logger.Warn("stock cache write failed", zap.Error(err))
	}
}
