package rest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

type moodTextRequest struct {
	Text string `json:"text"`
}

type moodImageRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// MatchText handles POST /mood/text.
func (h *Handler) MatchText(w http.ResponseWriter, r *http.Request) {
	var req moodTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.matcher.MatchText(r.Context(), req.Text)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MatchImage handles POST /mood/image.
func (h *Handler) MatchImage(w http.ResponseWriter, r *http.Request) {
	var req moodImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_base64 is not valid base64")
		return
	}

	result, err := h.matcher.MatchImage(r.Context(), data, req.MimeType)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type playActionRequest struct {
	URI string `json:"uri"`
}

// Play handles POST /play.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	var req playActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URI == "" {
		writeError(w, http.StatusBadRequest, "uri is required")
		return
	}

	if err := h.matcher.Play(r.Context(), req.URI); err != nil {
		writeError(w, http.StatusBadGateway, "playback request failed")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "mood input must not be empty")
	case errors.Is(err, domain.ErrImageEncoding):
		writeError(w, http.StatusBadRequest, "image could not be processed")
	case errors.Is(err, domain.ErrSuperseded):
		writeError(w, http.StatusConflict, "request superseded by a newer one")
	case errors.Is(err, domain.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "mood analysis timed out")
	default:
		writeError(w, http.StatusBadGateway, "could not understand your mood right now")
	}
}
