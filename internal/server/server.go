// Package server provides the HTTP API over the catalog reader.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tajrlabs/catalog/internal/config"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/reader"
	"go.uber.org/zap"
)

// CatalogReader is the read-cycle surface the server depends on.
type CatalogReader interface {
	ReadItems(ctx context.Context, opts reader.Options) (*reader.ItemsResult, error)
}

// snapshot is the result of the last refresh with an id lookup over its items.
type snapshot struct {
	result *reader.ItemsResult
	byID   map[string]*models.Item
}

// Server is the HTTP server for the catalog API. Item and split lookups serve
// from the snapshot of the last refresh; a refresh swaps the snapshot whole.
type Server struct {
	catalog CatalogReader
	config  *config.ServerConfig
	read    *config.ReadConfig
	logger  *zap.Logger
	server  *http.Server

	mu   sync.RWMutex
	snap *snapshot
}

// NewServer creates a server with the given dependencies.
func NewServer(
	catalog CatalogReader,
	cfg *config.ServerConfig,
	read *config.ReadConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog: catalog,
		config:  cfg,
		read:    read,
		logger:  logger,
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/catalog/refresh", s.handleRefresh)
	r.Get("/api/v1/catalog/splits", s.handleSplits)
	r.Get("/api/v1/items/{id}", s.handleGetItem)
	r.Get("/api/v1/items/{id}/docs", s.handleItemDocs)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) setSnapshot(res *reader.ItemsResult) {
	byID := make(map[string]*models.Item, len(res.Items))
	for _, item := range res.Items {
		byID[item.ID] = item
	}
	s.mu.Lock()
	s.snap = &snapshot{result: res, byID: byID}
	s.mu.Unlock()
}

func (s *Server) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
