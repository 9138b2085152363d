package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/internal/dates"
	"github.com/psicogestion/practice-api/internal/patients"
	"github.com/psicogestion/practice-api/pkg/logging"
)

const defaultDurationMinutes = 60

// PatientLookup resolves patient records for reminders. It is satisfied by
// the patients repository.
type PatientLookup interface {
	Get(id string) (patients.Patient, error)
}

// ReminderDrafter produces a reminder message for an upcoming session.
type ReminderDrafter interface {
	DraftAppointmentReminder(ctx context.Context, patientName, day, timeOfDay string) string
}

// Handler serves the appointment and calendar endpoints.
type Handler struct {
	repo     Repository
	patients PatientLookup
	reminder ReminderDrafter
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates an appointment handler.
func NewHandler(repo Repository, patientLookup PatientLookup, reminder ReminderDrafter, logger *logging.Logger) *Handler {
	return &Handler{
		repo:     repo,
		patients: patientLookup,
		reminder: reminder,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes mounts the appointment endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/appointments", h.list)
	r.Post("/appointments", h.create)
	r.Get("/appointments/{id}", h.get)
	r.Put("/appointments/{id}", h.update)
	r.Put("/appointments/{id}/status", h.updateStatus)
	r.Post("/appointments/{id}/reminder", h.draftReminder)
	r.Get("/calendar", h.calendar)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var list []Appointment
	if patientID := q.Get("patient_id"); patientID != "" {
		list = h.repo.ListByPatient(patientID)
	} else {
		list = h.repo.List()
	}
	list = Filter(list, Status(q.Get("status")), SessionType(q.Get("type")))

	respondJSON(w, http.StatusOK, list)
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

	a := appointmentFromRequest(req)
	a.ID = newID()
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = defaultDurationMinutes
	}

	if err := h.repo.Add(a); err != nil {
		h.logger.Error("failed to store appointment", "error", err)
		http.Error(w, "failed to store appointment", http.StatusInternalServerError)
		return
	}

	h.logger.Info("appointment created", "appointment_id", a.ID, "patient_id", a.PatientID)
	respondJSON(w, http.StatusCreated, a)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
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

	updated := appointmentFromRequest(req)
	updated.ID = existing.ID
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if updated.DurationMinutes == 0 {
		updated.DurationMinutes = existing.DurationMinutes
	}

	if err := h.repo.Replace(updated); err != nil {
		h.logger.Error("failed to update appointment", "appointment_id", existing.ID, "error", err)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.Status = req.Status
	if err := h.repo.Replace(a); err != nil {
		h.logger.Error("failed to update status", "appointment_id", a.ID, "error", err)
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *Handler) draftReminder(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}

	// Appointments can outlive their patient record.
	patientName := "Desconocido"
	if p, err := h.patients.Get(a.PatientID); err == nil {
		patientName = p.Name
	}

	day, timeOfDay := a.Date, ""
	if t, err := dates.Parse(a.Date); err == nil {
		day = t.Format("02/01/2006")
		timeOfDay = t.Format("15:04")
	}

	text := h.reminder.DraftAppointmentReminder(r.Context(), patientName, day, timeOfDay)
	respondJSON(w, http.StatusOK, map[string]string{"reminder": text})
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	anchor := h.now()
	if raw := q.Get("date"); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		anchor = t
	}

	list := Filter(h.repo.List(), Status(q.Get("status")), SessionType(q.Get("type")))
	switch q.Get("view") {
	case "", "month":
		respondJSON(w, http.StatusOK, MonthBuckets(list, anchor))
	case "week":
		respondJSON(w, http.StatusOK, WeekBuckets(list, anchor))
	case "day":
		respondJSON(w, http.StatusOK, DayBuckets(list, anchor))
	default:
		http.Error(w, "invalid view", http.StatusBadRequest)
	}
}

func appointmentFromRequest(req CreateRequest) Appointment {
	return Appointment{
		PatientID:       req.PatientID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Status:          req.Status,
		SessionNotes:    req.SessionNotes,
	}
}

func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
