package patients

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/pkg/logging"
)

type fakeRemover struct {
	removedFor []string
}

func (f *fakeRemover) RemoveByPatient(patientID string) int {
	f.removedFor = append(f.removedFor, patientID)
	return 2
}

func newTestServer(repo Repository, remover AppointmentRemover) *chi.Mux {
	h := NewHandler(repo, remover, logging.Default())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCreatePatient(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"name":"Ana García","email":"ana@example.com","age":34}`)
	req := httptest.NewRequest(http.MethodPost, "/patients", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created Patient
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if !created.Active {
		t.Error("new patients should default to active")
	}
	if created.StartDate == "" {
		t.Error("expected start date to default to today")
	}
	if created.ClinicalNotes == nil || created.Attachments == nil {
		t.Error("expected empty note and attachment collections, not null")
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	router := newTestServer(NewInMemoryRepository(), &fakeRemover{})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com"}`},
		{"missing email", `{"name":"Ana"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestListPatients_Filtering(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{ID: "1", Name: "Ana García", Email: "ana@example.com", Active: true})
	repo.Add(Patient{ID: "2", Name: "Carlos Ruiz", Email: "carlos@example.com", Active: false})
	router := newTestServer(repo, &fakeRemover{})

	req := httptest.NewRequest(http.MethodGet, "/patients?q=ana&status=active", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var list []Patient
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 || list[0].ID != "1" {
		t.Errorf("unexpected result: %+v", list)
	}
}

func TestUpdatePatient_PreservesNotesAndAttachments(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{
		ID: "1", Name: "Ana", Email: "ana@example.com", Active: true,
		StartDate:     "2023-01-15",
		ClinicalNotes: []ClinicalNote{{ID: "n1", Content: "Primera sesión"}},
		Attachments:   []Attachment{{ID: "a1", Name: "consent.pdf"}},
	})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"name":"Ana García","email":"ana@example.com","active":false}`)
	req := httptest.NewRequest(http.MethodPut, "/patients/1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _ := repo.Get("1")
	if got.Active {
		t.Error("expected patient to be inactive after update")
	}
	if len(got.ClinicalNotes) != 1 || len(got.Attachments) != 1 {
		t.Error("update must not drop notes or attachments")
	}
	if got.StartDate != "2023-01-15" {
		t.Errorf("expected start date preserved, got %s", got.StartDate)
	}
}

func TestDeletePatient_CascadesAppointments(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{ID: "1", Name: "Ana"})
	remover := &fakeRemover{}
	router := newTestServer(repo, remover)

	req := httptest.NewRequest(http.MethodDelete, "/patients/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(remover.removedFor) != 1 || remover.removedFor[0] != "1" {
		t.Errorf("expected appointments cascade for patient 1, got %v", remover.removedFor)
	}
	if _, err := repo.Get("1"); err == nil {
		t.Error("expected patient to be gone")
	}
}

func TestDeletePatient_NotFound(t *testing.T) {
	remover := &fakeRemover{}
	router := newTestServer(NewInMemoryRepository(), remover)

	req := httptest.NewRequest(http.MethodDelete, "/patients/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if len(remover.removedFor) != 0 {
		t.Error("cascade must not run for missing patients")
	}
}

func TestAddNote_DefaultsAndPrepends(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{
		ID: "1", Name: "Ana",
		ClinicalNotes: []ClinicalNote{{ID: "n1", Title: "Anterior", Content: "vieja"}},
	})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"content":"Avances notables en la sesión."}`)
	req := httptest.NewRequest(http.MethodPost, "/patients/1/notes", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _ := repo.Get("1")
	if len(got.ClinicalNotes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(got.ClinicalNotes))
	}
	newest := got.ClinicalNotes[0]
	if newest.Title != "Sesión sin título" {
		t.Errorf("expected default title, got %q", newest.Title)
	}
	if newest.Date == "" {
		t.Error("expected note date to default to today")
	}
	if got.ClinicalNotes[1].ID != "n1" {
		t.Error("new notes must be prepended")
	}
}

func TestUpdateNote(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{
		ID: "1", Name: "Ana",
		ClinicalNotes: []ClinicalNote{
			{ID: "n1", Date: "2023-10-01", Title: "Sesión 1", Content: "original"},
			{ID: "n2", Date: "2023-09-01", Title: "Sesión 0", Content: "previa"},
		},
	})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"title":"Sesión revisada","content":"corregido"}`)
	req := httptest.NewRequest(http.MethodPut, "/patients/1/notes/n1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _ := repo.Get("1")
	if got.ClinicalNotes[0].Content != "corregido" || got.ClinicalNotes[0].Title != "Sesión revisada" {
		t.Errorf("note not updated in place: %+v", got.ClinicalNotes[0])
	}
	if got.ClinicalNotes[0].Date != "2023-10-01" {
		t.Error("omitted date must be preserved")
	}
	if got.ClinicalNotes[1].Content != "previa" {
		t.Error("other notes must be untouched")
	}
}

func TestUpdateNote_EmptyTitleClearsIt(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{
		ID: "1", Name: "Ana",
		ClinicalNotes: []ClinicalNote{{ID: "n1", Date: "2023-10-01", Title: "Sesión 1", Content: "original"}},
	})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"content":"sin título ahora"}`)
	req := httptest.NewRequest(http.MethodPut, "/patients/1/notes/n1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _ := repo.Get("1")
	if got.ClinicalNotes[0].Title != "" {
		t.Errorf("edit must replace the title, got %q", got.ClinicalNotes[0].Title)
	}
	if got.ClinicalNotes[0].Content != "sin título ahora" {
		t.Errorf("unexpected content: %q", got.ClinicalNotes[0].Content)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{ID: "1", Name: "Ana"})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"content":"algo"}`)
	req := httptest.NewRequest(http.MethodPut, "/patients/1/notes/missing", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestAttachmentLifecycle(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Patient{ID: "1", Name: "Ana"})
	router := newTestServer(repo, &fakeRemover{})

	body := bytes.NewBufferString(`{"name":"informe.pdf","type":"application/pdf","data":"JVBERi0="}`)
	req := httptest.NewRequest(http.MethodPost, "/patients/1/attachments", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var att Attachment
	if err := json.NewDecoder(rec.Body).Decode(&att); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if att.UploadDate == "" {
		t.Error("expected upload date to be set")
	}

	req = httptest.NewRequest(http.MethodDelete, "/patients/1/attachments/"+att.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	got, _ := repo.Get("1")
	if len(got.Attachments) != 0 {
		t.Errorf("expected no attachments, got %d", len(got.Attachments))
	}
}
