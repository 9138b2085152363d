// Package patients manages patient records, their clinical note history and
// file attachments.
package patients

import "strings"

// ClinicalNote is one dated entry in a patient's session history. Notes are
// ordered newest first.
type ClinicalNote struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Attachment is a file stored inline with the patient record. Data carries the
// base64-encoded content as received from the client.
type Attachment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Data       string `json:"data"`
	UploadDate string `json:"upload_date"`
}

// Patient is the full patient record.
type Patient struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	Age              int            `json:"age"`
	StartDate        string         `json:"start_date"`
	Active           bool           `json:"active"`
	Notes            string         `json:"notes"`
	Occupation       string         `json:"occupation,omitempty"`
	Address          string         `json:"address,omitempty"`
	EmergencyContact string         `json:"emergency_contact,omitempty"`
	ReferralSource   string         `json:"referral_source,omitempty"`
	ClinicalNotes    []ClinicalNote `json:"clinical_notes"`
	Attachments      []Attachment   `json:"attachments"`
}

// CreateRequest carries the mutable fields of a patient record. Active is a
// pointer so an omitted value defaults to true rather than false.
type CreateRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	StartDate        string `json:"start_date"`
	Active           *bool  `json:"active"`
	Notes            string `json:"notes"`
	Occupation       string `json:"occupation"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	ReferralSource   string `json:"referral_source"`
}

// Validate checks the request for required fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	return nil
}

// NoteRequest carries the fields of a clinical note create or update.
type NoteRequest struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks the note for required fields.
func (r *NoteRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrNoteContentRequired
	}
	return nil
}

// AttachmentRequest carries an uploaded file.
type AttachmentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Validate checks the attachment for required fields.
func (r *AttachmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || r.Data == "" {
		return ErrAttachmentIncomplete
	}
	return nil
}
