package assistant

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler serves the clinical note endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates an assistant handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the assistant endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assistant/clinical-note", h.clinicalNote)
}

type clinicalNoteRequest struct {
	RawNotes string `json:"raw_notes"`
}

func (h *Handler) clinicalNote(w http.ResponseWriter, r *http.Request) {
	var req clinicalNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RawNotes) == "" {
		http.Error(w, "raw_notes is required", http.StatusBadRequest)
		return
	}

	text := h.service.StructureClinicalNote(r.Context(), req.RawNotes)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"note": text})
}
