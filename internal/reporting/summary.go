// Package reporting derives the dashboard view from the patient, agenda and
// ledger stores. All computations are pure.
package reporting

import (
	"time"

	"github.com/psicogestion/practice-api/internal/appointments"
	"github.com/psicogestion/practice-api/internal/dates"
	"github.com/psicogestion/practice-api/internal/finance"
	"github.com/psicogestion/practice-api/internal/patients"
)

// DayPoint is one bar in the weekday chart.
type DayPoint struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Count   int    `json:"count"`
	IsToday bool   `json:"is_today"`
}

// NextAppointment is the first upcoming session, with the patient name
// resolved for display.
type NextAppointment struct {
	Appointment appointments.Appointment `json:"appointment"`
	PatientName string                   `json:"patient_name"`
}

// Summary is the dashboard headline view.
type Summary struct {
	ActivePatients      int              `json:"active_patients"`
	WeeklyAppointments  int              `json:"weekly_appointments"`
	MonthlyAppointments int              `json:"monthly_appointments"`
	MonthlyIncome       float64          `json:"monthly_income"`
	Week                []DayPoint       `json:"week"`
	Next                *NextAppointment `json:"next_appointment,omitempty"`
}

var weekdayNames = [5]string{"Lun", "Mar", "Mié", "Jue", "Vie"}

// BuildSummary computes the dashboard for the given instant. Records whose
// dates cannot be parsed are left out of the time-bucketed figures.
// Appointments count regardless of status; a cancelled session still occupies
// its slot in the week.
func BuildSummary(ps []patients.Patient, as []appointments.Appointment, txs []finance.Transaction, now time.Time) Summary {
	// Record dates are naive and parse as UTC; compare wall clocks, not
	// instants, so the window holds in any server zone.
	now = dates.Wall(now)
	weekStart := dates.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 6).Add(24*time.Hour - time.Second)

	s := Summary{}

	for _, p := range ps {
		if p.Active {
			s.ActivePatients++
		}
	}

	for _, a := range as {
		t, err := dates.Parse(a.Date)
		if err != nil {
			continue
		}
		if !t.Before(weekStart) && !t.After(weekEnd) {
			s.WeeklyAppointments++
		}
		if t.Year() == now.Year() && t.Month() == now.Month() {
			s.MonthlyAppointments++
		}
	}

	for _, tx := range txs {
		if tx.Type != finance.TypeIncome {
			continue
		}
		t, err := dates.Parse(tx.Date)
		if err != nil {
			continue
		}
		if t.Year() == now.Year() && t.Month() == now.Month() {
			s.MonthlyIncome += tx.Amount
		}
	}

	s.Week = make([]DayPoint, len(weekdayNames))
	for i, name := range weekdayNames {
		day := weekStart.AddDate(0, 0, i)
		point := DayPoint{
			Name:    name,
			Date:    day.Format("2006-01-02"),
			IsToday: dates.SameDay(day, now),
		}
		for _, a := range as {
			if t, err := dates.Parse(a.Date); err == nil && dates.SameDay(t, day) {
				point.Count++
			}
		}
		s.Week[i] = point
	}

	s.Next = FindNextAppointment(ps, as, now)
	return s
}

// FindNextAppointment returns the earliest session strictly after now, or nil
// when the agenda holds none.
func FindNextAppointment(ps []patients.Patient, as []appointments.Appointment, now time.Time) *NextAppointment {
	now = dates.Wall(now)
	var (
		best     appointments.Appointment
		bestTime time.Time
		found    bool
	)
	for _, a := range as {
		t, err := dates.Parse(a.Date)
		if err != nil || !t.After(now) {
			continue
		}
		if !found || t.Before(bestTime) {
			best, bestTime, found = a, t, true
		}
	}
	if !found {
		return nil
	}

	name := "Paciente"
	for _, p := range ps {
		if p.ID == best.PatientID {
			name = p.Name
			break
		}
	}
	return &NextAppointment{Appointment: best, PatientName: name}
}
