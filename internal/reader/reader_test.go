package reader

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tajrlabs/catalog/internal/cache"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/parser"
	"github.com/tajrlabs/catalog/internal/source"
)

type fakeSource struct {
	records []models.RawRecord
	err     error

	calls    int
	lastOpts source.FetchOptions
}

func (f *fakeSource) FetchItems(_ context.Context, opts source.FetchOptions) ([]models.RawRecord, error) {
	f.calls++
	f.lastOpts = opts
	return f.records, f.err
}

func (f *fakeSource) UpdateItems(context.Context, []models.RawRecord, string) error {
	return nil
}

func rawRecord(id, kind, vendor, name string) models.RawRecord {
	return models.RawRecord{
		"_id":  id,
		"kind": kind,
		"vendor": map[string]any{
			"name": map[string]any{"en": vendor},
			"id":   vendor + "-id",
		},
		"name": map[string]any{"en": name},
	}
}

func newTestReader(t *testing.T, src source.DataSource) (*Reader, cache.Store) {
	t.Helper()
	store, err := cache.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(src, store, parser.New(nil)), store
}

func TestReadAttributesLive(t *testing.T) {
	src := &fakeSource{records: []models.RawRecord{
		rawRecord("1", "food", "Grill House", "burger"),
		rawRecord("2", "food", "Grill House", "fries"),
	}}
	r, store := newTestReader(t, src)

	res, err := r.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if res.FromCache {
		t.Error("live fetch must not be marked cache-derived")
	}
	if len(res.Attrs) != 2 || len(res.Splits) != 1 {
		t.Errorf("items/splits = %d/%d", len(res.Attrs), len(res.Splits))
	}
	if res.ReadID == "" {
		t.Error("read id should be assigned")
	}

	// Live fetches write through to the raw cache.
	ok, err := store.Has(context.Background(), cache.KeyRawItems)
	if err != nil || !ok {
		t.Errorf("raw cache after live read: has=%v err=%v", ok, err)
	}
}

func TestReadAttributesFallbackToCache(t *testing.T) {
	live := &fakeSource{records: []models.RawRecord{
		rawRecord("1", "food", "Grill House", "burger"),
	}}
	r, store := newTestReader(t, live)
	if _, err := r.ReadAttributes(context.Background(), Options{}); err != nil {
		t.Fatalf("seed read: %v", err)
	}

	failing := &fakeSource{err: errors.New("source down")}
	r2 := New(failing, store, parser.New(nil))
	res, err := r2.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if !res.FromCache {
		t.Error("fallback read must be marked cache-derived")
	}
	if len(res.Attrs) != 1 || res.Attrs[0].ID != "1" {
		t.Errorf("cached items = %v", res.Attrs)
	}
}

func TestReadAttributesEmptyEverywhere(t *testing.T) {
	src := &fakeSource{err: errors.New("source down")}
	r, _ := newTestReader(t, src)

	res, err := r.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("total unavailability must not be an error, got %v", err)
	}
	if len(res.Attrs) != 0 || !res.FromCache {
		t.Errorf("result = %d items, from_cache=%v", len(res.Attrs), res.FromCache)
	}
}

func TestReadAttributesEmptyLiveResultFallsBack(t *testing.T) {
	src := &fakeSource{records: nil}
	r, _ := newTestReader(t, src)

	res, err := r.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if !res.FromCache {
		t.Error("an empty live result must fall back to the cache")
	}
}

func TestReadAttributesExplicitCacheSkipsSource(t *testing.T) {
	src := &fakeSource{records: []models.RawRecord{
		rawRecord("1", "food", "Grill House", "burger"),
	}}
	r, _ := newTestReader(t, src)
	if _, err := r.ReadAttributes(context.Background(), Options{}); err != nil {
		t.Fatalf("seed read: %v", err)
	}
	calls := src.calls

	res, err := r.ReadAttributes(context.Background(), Options{Cached: true})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if src.calls != calls {
		t.Error("explicit cache read must not call the source")
	}
	if !res.FromCache || len(res.Attrs) != 1 {
		t.Errorf("result = %d items, from_cache=%v", len(res.Attrs), res.FromCache)
	}
}

func TestReadAttributesCountsParseFailures(t *testing.T) {
	src := &fakeSource{records: []models.RawRecord{
		rawRecord("1", "food", "Grill House", "burger"),
		{"kind": "food"}, // no _id
	}}
	r, _ := newTestReader(t, src)

	res, err := r.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if res.ParseFailures != 1 {
		t.Errorf("parse failures = %d, want 1", res.ParseFailures)
	}
	if len(res.Attrs) != 1 {
		t.Errorf("items = %d, want 1 (batch continues)", len(res.Attrs))
	}
}

func TestReadAttributesUncategorized(t *testing.T) {
	src := &fakeSource{records: []models.RawRecord{
		rawRecord("1", "food", "Grill House", "burger"),
		rawRecord("2", "misc", "Oddities", "widget"),
	}}
	r, store := newTestReader(t, src)

	res, err := r.ReadAttributes(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if len(res.Attrs) != 1 || res.Uncategorized != 1 {
		t.Errorf("items/uncategorized = %d/%d", len(res.Attrs), res.Uncategorized)
	}
	ok, err := store.Has(context.Background(), cache.KeyUncategorized)
	if err != nil || !ok {
		t.Errorf("uncategorized log: has=%v err=%v", ok, err)
	}

	res, err = r.ReadAttributes(context.Background(), Options{AllowUncategorized: true})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if len(res.Attrs) != 2 || res.Uncategorized != 0 {
		t.Errorf("allow-uncategorized items/uncategorized = %d/%d", len(res.Attrs), res.Uncategorized)
	}
}

func TestReadItems(t *testing.T) {
	src := &fakeSource{records: []models.RawRecord{
		rawRecord("2", "food", "Grill House", "fries"),
		rawRecord("1", "food", "Grill House", "burger"),
	}}
	r, _ := newTestReader(t, src)

	res, err := r.ReadItems(context.Background(), Options{})
	if err != nil {
		t.Fatalf("ReadItems: %v", err)
	}
	if !src.lastOpts.LiveVendorsOnly {
		t.Error("item reads must target live vendors")
	}
	for i, item := range res.Items {
		if item.PositionIndex != i {
			t.Errorf("item %d position index = %d", i, item.PositionIndex)
		}
	}
	if res.Items[0].ID != "1" {
		t.Errorf("first item = %s, want sorted by name", res.Items[0].ID)
	}

	stock, err := r.ReadStockAreas(context.Background())
	if err != nil {
		t.Fatalf("ReadStockAreas: %v", err)
	}
	if len(stock) != 2 {
		t.Errorf("stock cache entries = %d, want 2", len(stock))
	}
}

func TestReadStockAreasEmpty(t *testing.T) {
	r, _ := newTestReader(t, &fakeSource{})
	stock, err := r.ReadStockAreas(context.Background())
	if err != nil {
		t.Fatalf("ReadStockAreas: %v", err)
	}
	if len(stock) != 0 {
		t.Errorf("stock = %v, want empty", stock)
	}
}
