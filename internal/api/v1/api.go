// Package v1 implements the REST API over the library store.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/medialog/internal/library"
	"github.com/vmunix/medialog/internal/notify"
)

// Server is the v1 API server.
type Server struct {
	store   *library.Store
	bus     *notify.Bus // nil if notifications aren't exposed
	version string
}

// New creates a new v1 API server.
func New(store *library.Store, bus *notify.Bus, version string) *Server {
	return &Server{store: store, bus: bus, version: version}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Media
	mux.HandleFunc("GET /api/v1/media", s.listMedia)
	mux.HandleFunc("POST /api/v1/media", s.addMedia)
	mux.HandleFunc("GET /api/v1/media/{id}", s.getMedia)
	mux.HandleFunc("DELETE /api/v1/media/{id}", s.deleteMedia)
	mux.HandleFunc("POST /api/v1/media/{id}/watched", s.toggleWatched)
	mux.HandleFunc("PUT /api/v1/media/{id}/rating", s.updateRating)
	mux.HandleFunc("GET /api/v1/media/{id}/related", s.listRelated)
	mux.HandleFunc("PUT /api/v1/media/{id}/related", s.updateRelated)

	// Filters (session state)
	mux.HandleFunc("GET /api/v1/filters", s.getFilters)
	mux.HandleFunc("PUT /api/v1/filters", s.setFilters)

	// Collections
	mux.HandleFunc("GET /api/v1/collections", s.listCollections)
	mux.HandleFunc("POST /api/v1/collections", s.createCollection)
	mux.HandleFunc("GET /api/v1/collections/{id}", s.getCollection)
	mux.HandleFunc("PATCH /api/v1/collections/{id}", s.updateCollection)
	mux.HandleFunc("DELETE /api/v1/collections/{id}", s.deleteCollection)
	mux.HandleFunc("PUT /api/v1/collections/{id}/media/{mediaID}", s.addToCollection)
	mux.HandleFunc("DELETE /api/v1/collections/{id}/media/{mediaID}", s.removeFromCollection)

	// Library-wide
	mux.HandleFunc("GET /api/v1/graph", s.getGraph)
	mux.HandleFunc("GET /api/v1/timeline", s.getTimeline)
	mux.HandleFunc("GET /api/v1/search", s.search)
	mux.HandleFunc("GET /api/v1/export", s.exportLibrary)
	mux.HandleFunc("POST /api/v1/import", s.importLibrary)
	mux.HandleFunc("DELETE /api/v1/library", s.clearLibrary)

	// System
	mux.HandleFunc("GET /api/v1/notifications", s.listNotifications)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeStoreError maps library sentinels to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrDuplicate):
		writeError(w, http.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, library.ErrInvalid):
		writeError(w, http.StatusBadRequest, "INVALID", err.Error())
	case errors.Is(err, library.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// queryString extracts an optional string from the query string.
func queryString(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}
