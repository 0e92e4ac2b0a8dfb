package rest

import (
	"encoding/json"
	"net/http"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// Search handles GET /search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	entries, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not reach the music catalog")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListHistory handles GET /history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.history.List())
}

// RecordHistory handles POST /history. The frontend records an entry after a
// search result is played.
func (h *Handler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	var entry domain.CatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	h.history.Record(entry)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveHistory handles DELETE /history/{title}. The mux hands over the path
// segment already decoded.
func (h *Handler) RemoveHistory(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	h.history.Remove(title)
	w.WriteHeader(http.StatusNoContent)
}
