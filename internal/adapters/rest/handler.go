// Package rest is the HTTP surface of the MoodMatch backend.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/services"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	matcher *services.Matcher
	library *services.Library
	history *services.SearchHistory
	catalog ports.CatalogProvider
	router  *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(matcher *services.Matcher, library *services.Library, history *services.SearchHistory, catalog ports.CatalogProvider) *Handler {
	h := &Handler{
		matcher: matcher,
		library: library,
		history: history,
		catalog: catalog,
		router:  http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Mood pipeline
	h.router.HandleFunc("POST /mood/text", h.MatchText)
	h.router.HandleFunc("POST /mood/image", h.MatchImage)

	// Catalog + playback
	h.router.HandleFunc("GET /search", h.Search)
	h.router.HandleFunc("POST /play", h.Play)

	// Library
	h.router.HandleFunc("POST /playlists", h.CreatePlaylist)
	h.router.HandleFunc("GET /playlists", h.ListPlaylists)
	h.router.HandleFunc("GET /playlists/{id}", h.GetPlaylist)
	h.router.HandleFunc("POST /playlists/{id}/songs", h.AddSong)
	h.router.HandleFunc("POST /likes", h.LikeSong)

	// Search history
	h.router.HandleFunc("GET /history", h.ListHistory)
	h.router.HandleFunc("POST /history", h.RecordHistory)
	h.router.HandleFunc("DELETE /history/{title}", h.RemoveHistory)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
