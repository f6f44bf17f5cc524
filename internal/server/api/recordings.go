// Package api provides HTTP API handlers for the pinchslice status server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/pinchslice/internal/store"
)

// RecordingHandler handles HTTP requests for stored landmark recordings.
type RecordingHandler struct {
	store *store.Store
}

// NewRecordingHandler creates a new RecordingHandler with the given store.
func NewRecordingHandler(s *store.Store) *RecordingHandler {
	return &RecordingHandler{store: s}
}

// ServeHTTP routes /api/recordings and /api/recordings/{name}.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, name)
	case http.MethodDelete:
		h.delete(w, r, name)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type recordingResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Frames    int    `json:"frames"`
	CreatedAt string `json:"created_at"`
}

type listRecordingsResponse struct {
	Recordings []recordingResponse `json:"recordings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RecordingHandler) toResponse(rec *store.Recording) (recordingResponse, error) {
	frames, err := h.store.Recordings().CountFrames(rec.ID)
	if err != nil {
		return recordingResponse{}, err
	}
	return recordingResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Width:     rec.Width,
		Height:    rec.Height,
		Frames:    frames,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/recordings.
func (h *RecordingHandler) list(w http.ResponseWriter, r *http.Request) {
	recordings, err := h.store.Recordings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	response := listRecordingsResponse{
		Recordings: make([]recordingResponse, 0, len(recordings)),
	}
	for _, rec := range recordings {
		item, err := h.toResponse(rec)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to count frames")
			return
		}
		response.Recordings = append(response.Recordings, item)
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/recordings/{name}.
func (h *RecordingHandler) get(w http.ResponseWriter, r *http.Request, name string) {
	rec, err := h.store.Recordings().GetByName(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	item, err := h.toResponse(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count frames")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// delete handles DELETE /api/recordings/{name}. Frames go with it.
func (h *RecordingHandler) delete(w http.ResponseWriter, r *http.Request, name string) {
	rec, err := h.store.Recordings().GetByName(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	if err := h.store.Recordings().Delete(rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete recording")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
