package v1

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/medialog/internal/importer"
	"github.com/vmunix/medialog/internal/library"
	"github.com/vmunix/medialog/internal/search"
)

// --- Media ---

func (s *Server) listMedia(w http.ResponseWriter, r *http.Request) {
	tf, wf, col := s.store.ActiveFilters()
	if v := queryString(r, "type"); v != "" {
		tf = library.TypeFilter(v)
	}
	if v := queryString(r, "watch"); v != "" {
		wf = library.WatchFilter(v)
	}
	if r.URL.Query().Has("collection") {
		col = queryString(r, "collection")
	}

	items := s.store.Filtered(tf, wf, col)
	writeJSON(w, http.StatusOK, listMediaResponse{Items: items, Total: len(items)})
}

func (s *Server) addMedia(w http.ResponseWriter, r *http.Request) {
	var item library.MediaItem
	if !decodeBody(w, r, &item) {
		return
	}
	added, err := s.store.AddMedia(&item)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request) {
	item, ok := s.store.GetMedia(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "media not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteMedia(w http.ResponseWriter, r *http.Request) {
	// Idempotent: deleting an unknown id is a no-op.
	s.store.DeleteMedia(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleWatched(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.store.ToggleWatched(id)
	if item, ok := s.store.GetMedia(id); ok {
		writeJSON(w, http.StatusOK, item)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.UpdateRating(r.PathValue("id"), req.Rating); err != nil {
		writeStoreError(w, err)
		return
	}
	if item, ok := s.store.GetMedia(r.PathValue("id")); ok {
		writeJSON(w, http.StatusOK, item)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listRelated(w http.ResponseWriter, r *http.Request) {
	items := s.store.RelatedItems(r.PathValue("id"))
	if items == nil {
		items = []*library.MediaItem{}
	}
	writeJSON(w, http.StatusOK, listMediaResponse{Items: items, Total: len(items)})
}

func (s *Server) updateRelated(w http.ResponseWriter, r *http.Request) {
	var req relatedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.store.UpdateRelatedMedia(r.PathValue("id"), req.RelatedIDs)
	w.WriteHeader(http.StatusNoContent)
}

// --- Filters ---

func (s *Server) getFilters(w http.ResponseWriter, _ *http.Request) {
	tf, wf, col := s.store.ActiveFilters()
	writeJSON(w, http.StatusOK, filtersPayload{Type: tf, Watch: wf, Collection: col})
}

func (s *Server) setFilters(w http.ResponseWriter, r *http.Request) {
	var req setFiltersRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type != "" {
		s.store.SetTypeFilter(req.Type)
	}
	if req.Watch != "" {
		s.store.SetWatchFilter(req.Watch)
	}
	if req.Collection != nil {
		s.store.SetActiveCollection(*req.Collection)
	}

	tf, wf, col := s.store.ActiveFilters()
	writeJSON(w, http.StatusOK, filtersPayload{Type: tf, Watch: wf, Collection: col})
}

// --- Collections ---

func (s *Server) listCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Collections())
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := s.store.CreateCollection(req.Name, req.Image)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	col, _ := s.store.GetCollection(id)
	writeJSON(w, http.StatusCreated, col)
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	col, ok := s.store.GetCollection(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "collection not found")
		return
	}
	writeJSON(w, http.StatusOK, col)
}

func (s *Server) updateCollection(w http.ResponseWriter, r *http.Request) {
	var req updateCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.store.UpdateCollection(r.PathValue("id"), library.CollectionUpdate{
		Name:  req.Name,
		Image: req.Image,
	})
	if col, ok := s.store.GetCollection(r.PathValue("id")); ok {
		writeJSON(w, http.StatusOK, col)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteCollection(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addToCollection(w http.ResponseWriter, r *http.Request) {
	s.store.AddToCollection(r.PathValue("id"), r.PathValue("mediaID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFromCollection(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveFromCollection(r.PathValue("id"), r.PathValue("mediaID"))
	w.WriteHeader(http.StatusNoContent)
}

// --- Library-wide ---

func (s *Server) getGraph(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Graph())
}

func (s *Server) getTimeline(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Timeline())
}

type searchHit struct {
	Item  *library.MediaItem `json:"item"`
	Score float64            `json:"score"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := queryString(r, "q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "missing query parameter: q")
		return
	}

	// Titles can repeat across years, so each candidate title maps to
	// every item carrying it.
	items := s.store.Items()
	byTitle := make(map[string][]*library.MediaItem, len(items))
	titles := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := byTitle[item.Title]; !seen {
			titles = append(titles, item.Title)
		}
		byTitle[item.Title] = append(byTitle[item.Title], item)
	}

	hits := []searchHit{}
	for _, res := range search.Rank(q, titles, search.ConfidenceLow) {
		for _, item := range byTitle[res.Title] {
			hits = append(hits, searchHit{Item: item, Score: res.Score})
		}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) exportLibrary(w http.ResponseWriter, _ *http.Request) {
	data, err := importer.ExportJSON(s.store.Items())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", importer.ExportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) importLibrary(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "read body: "+err.Error())
		return
	}

	if queryString(r, "format") == "outline" {
		outline := importer.ParseOutline(string(body))
		newItems, newCollections := importer.ApplyOutline(s.store, outline)
		writeJSON(w, http.StatusOK, importResponse{Imported: newItems, NewCollections: newCollections})
		return
	}

	candidates, malformed, err := importer.DecodeItems(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_FORMAT", err.Error())
		return
	}
	mode := library.ImportMerge
	if queryString(r, "mode") == string(library.ImportReplace) {
		mode = library.ImportReplace
	}
	imported, dropped := s.store.ImportMedia(candidates, mode)
	writeJSON(w, http.StatusOK, importResponse{Imported: imported, Dropped: dropped + malformed})
}

func (s *Server) clearLibrary(w http.ResponseWriter, _ *http.Request) {
	s.store.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

// --- System ---

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	if s.bus == nil {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Notifications not configured")
		return
	}
	limit := 20
	if v := queryString(r, "limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, s.bus.Recent(limit))
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version:     s.version,
		Items:       len(s.store.Items()),
		Collections: len(s.store.Collections()),
		Watched:     len(s.store.WatchedItems()),
		Unwatched:   len(s.store.UnwatchedItems()),
	})
}
