// Package seed loads the demo dataset used in development.
package seed

import (
	"time"

	"github.com/psicogestion/practice-api/internal/appointments"
	"github.com/psicogestion/practice-api/internal/finance"
	"github.com/psicogestion/practice-api/internal/patients"
)

// Demo fills the repositories with a small recognizable dataset. The single
// appointment lands today at 11:00 so the dashboard has something to show.
func Demo(p patients.Repository, a appointments.Repository, f finance.Repository) {
	p.Add(patients.Patient{
		ID:        "1",
		Name:      "Ana García",
		Email:     "ana.garcia@email.com",
		Phone:     "600111222",
		Age:       34,
		StartDate: "2023-01-15",
		Active:    true,
		Notes:     "Paciente con ansiedad generalizada.",
		ClinicalNotes: []patients.ClinicalNote{
			{ID: "n2", Date: "2023-10-01", Title: "Sesión de seguimiento", Content: "Avances notables en gestión de estrés laboral."},
			{ID: "n1", Date: "2023-09-17", Title: "Primera sesión", Content: "Evaluación inicial. Se establece plan de trabajo."},
		},
		Attachments: []patients.Attachment{},
	})
	p.Add(patients.Patient{
		ID:            "2",
		Name:          "Carlos Ruiz",
		Email:         "carlos.ruiz@email.com",
		Phone:         "600333444",
		Age:           42,
		StartDate:     "2023-03-10",
		Active:        true,
		Notes:         "Terapia de pareja individualizada.",
		ClinicalNotes: []patients.ClinicalNote{},
		Attachments:   []patients.Attachment{},
	})

	today := time.Now().Format("2006-01-02")
	a.Add(appointments.Appointment{
		ID:              "101",
		PatientID:       "1",
		Date:            today + "T11:00",
		DurationMinutes: 60,
		Type:            appointments.TypeFollowUp,
		Status:          appointments.StatusScheduled,
	})

	f.Add(finance.Transaction{
		ID:          "t1",
		Date:        "2023-10-05",
		Description: "Consulta Ana G.",
		Amount:      60,
		Type:        finance.TypeIncome,
		Category:    "Consulta",
	})
	f.Add(finance.Transaction{
		ID:          "t2",
		Date:        "2023-10-10",
		Description: "Alquiler despacho",
		Amount:      400,
		Type:        finance.TypeExpense,
		Category:    "Infraestructura",
	})
}
