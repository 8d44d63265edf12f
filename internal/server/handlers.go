package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/reader"
	"go.uber.org/zap"
)

// refreshRequest overrides the configured read options; absent fields keep
// their defaults. The body is optional, as is the cached query parameter.
type refreshRequest struct {
	Cached             *bool `json:"cached"`
	AllowUncategorized *bool `json:"allow_uncategorized"`
}

type refreshResponse struct {
	ReadID        string `json:"read_id"`
	Items         int    `json:"items"`
	Splits        int    `json:"splits"`
	FromCache     bool   `json:"from_cache"`
	ParseFailures int    `json:"parse_failures"`
	Uncategorized int    `json:"uncategorized"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	opts := reader.Options{
		Cached:             r.URL.Query().Get("cached") == "true",
		AllowUncategorized: s.read.AllowUncategorized,
	}
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Cached != nil {
		opts.Cached = *req.Cached
	}
	if req.AllowUncategorized != nil {
		opts.AllowUncategorized = *req.AllowUncategorized
	}
	s.logger.Debug("refresh request",
		zap.Bool("cached", opts.Cached),
		zap.Bool("allow_uncategorized", opts.AllowUncategorized),
	)

	res, err := s.catalog.ReadItems(r.Context(), opts)
	if err != nil {
		s.logger.Error("catalog refresh failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.setSnapshot(res)

	s.respondJSON(w, http.StatusOK, refreshResponse{
		ReadID:        res.ReadID,
		Items:         len(res.Items),
		Splits:        len(res.Splits),
		FromCache:     res.FromCache,
		ParseFailures: res.ParseFailures,
		Uncategorized: res.Uncategorized,
	})
}

func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		s.respondError(w, http.StatusNotFound, "no catalog loaded")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"read_id": snap.result.ReadID,
		"splits":  snap.result.Splits,
	})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		s.respondError(w, http.StatusNotFound, "no catalog loaded")
		return
	}
	item, ok := snap.byID[chi.URLParam(r, "id")]
	if !ok {
		s.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleItemDocs(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = models.LangEN
	}
	if lang != models.LangEN && lang != models.LangAR {
		s.respondError(w, http.StatusBadRequest, "lang must be en or ar")
		return
	}

	snap := s.snapshot()
	if snap == nil {
		s.respondError(w, http.StatusNotFound, "no catalog loaded")
		return
	}
	item, ok := snap.byID[chi.URLParam(r, "id")]
	if !ok {
		s.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":   item.ID,
		"lang": lang,
		"docs": item.ToDocs(lang),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
