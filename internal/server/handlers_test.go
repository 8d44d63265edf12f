package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tajrlabs/catalog/internal/config"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/reader"
	"go.uber.org/zap"
)

type mockCatalog struct {
	result *reader.ItemsResult
	err    error

	lastOpts reader.Options
}

func (m *mockCatalog) ReadItems(_ context.Context, opts reader.Options) (*reader.ItemsResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

func itemsResult() *reader.ItemsResult {
	attrs := &models.Attributes{
		ID:         "item-1",
		Category:   "fashion",
		VendorName: models.LangText{EN: "Zara"},
		VendorID:   "v1",
		Title:      models.LangText{EN: "summer dress", AR: "فستان صيفي"},
		NERDomain:  "fashion",
	}
	item := models.NewItem(attrs)
	return &reader.ItemsResult{
		ReadID: "read-1",
		Items:  []*models.Item{item},
		Splits: []models.VendorSplit{{
			Category:   "fashion",
			VendorName: models.LangText{EN: "Zara"},
			VendorID:   "v1",
			Start:      0,
			End:        1,
		}},
	}
}

func newTestServer(catalog CatalogReader) *Server {
	return NewServer(catalog, &config.ServerConfig{Port: 8080}, &config.ReadConfig{}, zap.NewNop())
}

func TestHandleRefresh(t *testing.T) {
	mock := &mockCatalog{result: itemsResult()}
	srv := newTestServer(mock)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out refreshResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ReadID != "read-1" || out.Items != 1 || out.Splits != 1 {
		t.Errorf("response: %+v", out)
	}
	if mock.lastOpts.Cached {
		t.Error("cached should default to false")
	}
}

func TestHandleRefresh_Cached(t *testing.T) {
	mock := &mockCatalog{result: itemsResult()}
	srv := newTestServer(mock)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh?cached=true", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !mock.lastOpts.Cached {
		t.Error("cached=true should be passed through")
	}
}

func TestHandleRefresh_BodyOverrides(t *testing.T) {
	mock := &mockCatalog{result: itemsResult()}
	srv := newTestServer(mock)

	body := strings.NewReader(`{"cached": true, "allow_uncategorized": true}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", body)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !mock.lastOpts.Cached || !mock.lastOpts.AllowUncategorized {
		t.Errorf("opts: %+v", mock.lastOpts)
	}
}

func TestHandleRefresh_BadBody(t *testing.T) {
	srv := newTestServer(&mockCatalog{result: itemsResult()})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", strings.NewReader("{"))
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleRefresh_Error(t *testing.T) {
	srv := newTestServer(&mockCatalog{err: errors.New("boom")})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
}

func TestHandleSplits_NoCatalog(t *testing.T) {
	srv := newTestServer(&mockCatalog{result: itemsResult()})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/splits", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status before refresh: got %d, want 404", w.Code)
	}
}

func TestHandleSplits(t *testing.T) {
	srv := newTestServer(&mockCatalog{result: itemsResult()})
	srv.setSnapshot(itemsResult())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/splits", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		ReadID string               `json:"read_id"`
		Splits []models.VendorSplit `json:"splits"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ReadID != "read-1" || len(out.Splits) != 1 {
		t.Errorf("response: %+v", out)
	}
}

func TestHandleGetItem(t *testing.T) {
	srv := newTestServer(&mockCatalog{})
	srv.setSnapshot(itemsResult())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/items/item-1", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "item-1" || out.Category != "fashion" {
		t.Errorf("item: %+v", out)
	}
}

func TestHandleGetItem_NotFound(t *testing.T) {
	srv := newTestServer(&mockCatalog{})
	srv.setSnapshot(itemsResult())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/items/missing", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleItemDocs(t *testing.T) {
	srv := newTestServer(&mockCatalog{})
	srv.setSnapshot(itemsResult())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/items/item-1/docs?lang=ar", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		ID   string              `json:"id"`
		Lang string              `json:"lang"`
		Docs map[string][]string `json:"docs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Lang != "ar" {
		t.Errorf("lang: %s", out.Lang)
	}
	titleDocs := out.Docs["0"]
	if len(titleDocs) != 1 || titleDocs[0] != "فستان صيفي" {
		t.Errorf("title group docs: %v", titleDocs)
	}
}

func TestHandleItemDocs_BadLang(t *testing.T) {
	srv := newTestServer(&mockCatalog{})
	srv.setSnapshot(itemsResult())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/items/item-1/docs?lang=fr", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&mockCatalog{})

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}
