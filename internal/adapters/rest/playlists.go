package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type songRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// CreatePlaylist handles POST /playlists.
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.library.CreatePlaylist(req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "playlist name must not be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// ListPlaylists handles GET /playlists.
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.library.Playlists())
}

// GetPlaylist handles GET /playlists/{id}.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.library.Playlist(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// AddSong handles POST /playlists/{id}/songs.
func (h *Handler) AddSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	song := domain.Song{Title: req.Title, Artist: req.Artist}
	if err := h.library.AddSong(r.PathValue("id"), song); err != nil {
		if errors.Is(err, domain.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// LikeSong handles POST /likes. Liking the same song twice is a no-op.
func (h *Handler) LikeSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	h.library.LikeSong(domain.Song{Title: req.Title, Artist: req.Artist})
	w.WriteHeader(http.StatusNoContent)
}
