// Package appointments manages the session agenda: scheduling, status
// transitions and calendar views.
package appointments

import "strings"

// SessionType classifies the clinical purpose of a session.
type SessionType string

const (
	TypeInitial   SessionType = "Inicial"
	TypeFollowUp  SessionType = "Seguimiento"
	TypeUrgent    SessionType = "Urgencia"
	TypeDischarge SessionType = "Cierre"
)

// Status is the scheduling state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a scheduled session with a patient.
type Appointment struct {
	ID              string      `json:"id"`
	PatientID       string      `json:"patient_id"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Type            SessionType `json:"type"`
	Status          Status      `json:"status"`
	SessionNotes    string      `json:"session_notes,omitempty"`
}

// CreateRequest carries the fields of a new or updated appointment.
type CreateRequest struct {
	PatientID       string      `json:"patient_id"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Type            SessionType `json:"type"`
	Status          Status      `json:"status"`
	SessionNotes    string      `json:"session_notes"`
}

// Validate checks the request for required fields and known enum values.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return ErrPatientRequired
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrDateRequired
	}
	switch r.Type {
	case TypeInitial, TypeFollowUp, TypeUrgent, TypeDischarge:
	default:
		return ErrInvalidType
	}
	switch r.Status {
	case "", StatusScheduled, StatusCompleted, StatusCancelled:
	default:
		return ErrInvalidStatus
	}
	if r.DurationMinutes < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// StatusRequest carries a status-only transition.
type StatusRequest struct {
	Status Status `json:"status"`
}

// Validate checks the status value.
func (r *StatusRequest) Validate() error {
	switch r.Status {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return nil
	default:
		return ErrInvalidStatus
	}
}
