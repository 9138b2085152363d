package appointments

import "errors"

var (
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointments: appointment not found")

	// ErrPatientRequired is returned when a request omits the patient id.
	ErrPatientRequired = errors.New("appointments: patient_id is required")

	// ErrDateRequired is returned when a request omits the date.
	ErrDateRequired = errors.New("appointments: date is required")

	// ErrInvalidType is returned for an unknown session type.
	ErrInvalidType = errors.New("appointments: invalid session type")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("appointments: invalid status")

	// ErrInvalidDuration is returned for a negative duration.
	ErrInvalidDuration = errors.New("appointments: duration must not be negative")
)
