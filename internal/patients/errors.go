package patients

import "errors"

var (
	// ErrNotFound is returned when a patient does not exist.
	ErrNotFound = errors.New("patients: patient not found")

	// ErrNoteNotFound is returned when a clinical note does not exist on the
	// patient.
	ErrNoteNotFound = errors.New("patients: clinical note not found")

	// ErrAttachmentNotFound is returned when an attachment does not exist on
	// the patient.
	ErrAttachmentNotFound = errors.New("patients: attachment not found")

	// ErrNameRequired is returned when a request omits the patient name.
	ErrNameRequired = errors.New("patients: name is required")

	// ErrEmailRequired is returned when a request omits the patient email.
	ErrEmailRequired = errors.New("patients: email is required")

	// ErrNoteContentRequired is returned when a note has no content.
	ErrNoteContentRequired = errors.New("patients: note content is required")

	// ErrAttachmentIncomplete is returned when an attachment is missing its
	// name or data.
	ErrAttachmentIncomplete = errors.New("patients: attachment name and data are required")
)
