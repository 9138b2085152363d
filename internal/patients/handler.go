package patients

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/pkg/logging"
)

// AppointmentRemover deletes all appointments belonging to a patient. It is
// satisfied by the appointments repository.
type AppointmentRemover interface {
	RemoveByPatient(patientID string) int
}

// Handler serves the patient endpoints.
type Handler struct {
	repo         Repository
	appointments AppointmentRemover
	logger       *logging.Logger
}

// NewHandler creates a patient handler.
func NewHandler(repo Repository, appointments AppointmentRemover, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, appointments: appointments, logger: logger}
}

// RegisterRoutes mounts the patient endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/patients", h.list)
	r.Post("/patients", h.create)
	r.Get("/patients/{id}", h.get)
	r.Put("/patients/{id}", h.update)
	r.Delete("/patients/{id}", h.delete)
	r.Post("/patients/{id}/notes", h.addNote)
	r.Put("/patients/{id}/notes/{noteID}", h.updateNote)
	r.Post("/patients/{id}/attachments", h.addAttachment)
	r.Delete("/patients/{id}/attachments/{attachmentID}", h.deleteAttachment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = StatusAll
	}

	respondJSON(w, http.StatusOK, Filter(h.repo.List(), query, status))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := patientFromRequest(req)
	p.ID = newID()
	if p.StartDate == "" {
		p.StartDate = time.Now().Format("2006-01-02")
	}
	p.ClinicalNotes = []ClinicalNote{}
	p.Attachments = []Attachment{}

	if err := h.repo.Add(p); err != nil {
		h.logger.Error("failed to store patient", "error", err)
		http.Error(w, "failed to store patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient created", "patient_id", p.ID)
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := patientFromRequest(req)
	updated.ID = existing.ID
	updated.ClinicalNotes = existing.ClinicalNotes
	updated.Attachments = existing.Attachments
	if updated.StartDate == "" {
		updated.StartDate = existing.StartDate
	}

	if err := h.repo.Replace(updated); err != nil {
		h.logger.Error("failed to update patient", "patient_id", existing.ID, "error", err)
		http.Error(w, "failed to update patient", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.Remove(id); err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	removed := h.appointments.RemoveByPatient(id)
	h.logger.Info("patient deleted", "patient_id", id, "appointments_removed", removed)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	note := ClinicalNote{
		ID:      newID(),
		Date:    req.Date,
		Title:   req.Title,
		Content: req.Content,
	}
	if note.Date == "" {
		note.Date = time.Now().Format("2006-01-02")
	}
	if note.Title == "" {
		note.Title = "Sesión sin título"
	}

	// Newest notes first.
	p.ClinicalNotes = append([]ClinicalNote{note}, p.ClinicalNotes...)

	if err := h.repo.Replace(p); err != nil {
		h.logger.Error("failed to store note", "patient_id", p.ID, "error", err)
		http.Error(w, "failed to store note", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	noteID := chi.URLParam(r, "noteID")
	updated, err := updateNoteInPlace(&p, noteID, req)
	if err != nil {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Replace(p); err != nil {
		h.logger.Error("failed to update note", "patient_id", p.ID, "note_id", noteID, "error", err)
		http.Error(w, "failed to update note", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) addAttachment(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	var req AttachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	att := Attachment{
		ID:         newID(),
		Name:       req.Name,
		Type:       req.Type,
		Data:       req.Data,
		UploadDate: time.Now().Format(time.RFC3339),
	}
	p.Attachments = append(p.Attachments, att)

	if err := h.repo.Replace(p); err != nil {
		h.logger.Error("failed to store attachment", "patient_id", p.ID, "error", err)
		http.Error(w, "failed to store attachment", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, att)
}

func (h *Handler) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}

	attachmentID := chi.URLParam(r, "attachmentID")
	if err := removeAttachment(&p, attachmentID); err != nil {
		http.Error(w, "attachment not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Replace(p); err != nil {
		h.logger.Error("failed to delete attachment", "patient_id", p.ID, "attachment_id", attachmentID, "error", err)
		http.Error(w, "failed to delete attachment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func patientFromRequest(req CreateRequest) Patient {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return Patient{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		StartDate:        req.StartDate,
		Active:           active,
		Notes:            req.Notes,
		Occupation:       req.Occupation,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		ReferralSource:   req.ReferralSource,
	}
}

func updateNoteInPlace(p *Patient, noteID string, req NoteRequest) (ClinicalNote, error) {
	for i := range p.ClinicalNotes {
		if p.ClinicalNotes[i].ID == noteID {
			if req.Date != "" {
				p.ClinicalNotes[i].Date = req.Date
			}
			p.ClinicalNotes[i].Title = req.Title
			p.ClinicalNotes[i].Content = req.Content
			return p.ClinicalNotes[i], nil
		}
	}
	return ClinicalNote{}, ErrNoteNotFound
}

func removeAttachment(p *Patient, attachmentID string) error {
	for i := range p.Attachments {
		if p.Attachments[i].ID == attachmentID {
			p.Attachments = append(p.Attachments[:i], p.Attachments[i+1:]...)
			return nil
		}
	}
	return ErrAttachmentNotFound
}

func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
