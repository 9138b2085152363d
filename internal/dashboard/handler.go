// Package dashboard serves the aggregated practice overview.
package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/internal/appointments"
	"github.com/psicogestion/practice-api/internal/finance"
	"github.com/psicogestion/practice-api/internal/patients"
	"github.com/psicogestion/practice-api/internal/reporting"
)

// PatientLister exposes the patient records the summary is computed from.
type PatientLister interface {
	List() []patients.Patient
}

// AppointmentLister exposes the agenda.
type AppointmentLister interface {
	List() []appointments.Appointment
}

// TransactionLister exposes the ledger.
type TransactionLister interface {
	List() []finance.Transaction
}

// Handler serves the dashboard endpoint.
type Handler struct {
	patients     PatientLister
	appointments AppointmentLister
	transactions TransactionLister
	now          func() time.Time
}

// NewHandler creates a dashboard handler.
func NewHandler(p PatientLister, a AppointmentLister, tx TransactionLister) *Handler {
	return &Handler{patients: p, appointments: a, transactions: tx, now: time.Now}
}

// RegisterRoutes mounts the dashboard endpoint on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s := reporting.BuildSummary(h.patients.List(), h.appointments.List(), h.transactions.List(), h.now())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}
