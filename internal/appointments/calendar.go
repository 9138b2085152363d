package appointments

import (
	"sort"
	"time"

	"github.com/psicogestion/practice-api/internal/dates"
)

// Working hours shown in the day view.
const (
	dayViewFirstHour = 8
	dayViewLastHour  = 21
)

// DayBucket groups the appointments of one calendar day.
type DayBucket struct {
	Date         string        `json:"date"`
	Appointments []Appointment `json:"appointments"`
}

// HourBucket groups the appointments of one hour slot in the day view.
type HourBucket struct {
	Hour         int           `json:"hour"`
	Appointments []Appointment `json:"appointments"`
}

// Filter narrows the list by status and session type. Empty values match
// everything.
func Filter(list []Appointment, status Status, sessionType SessionType) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if status != "" && a.Status != status {
			continue
		}
		if sessionType != "" && a.Type != sessionType {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MonthBuckets returns one bucket per day of the anchor's month, in order.
// Appointments with unparseable dates are skipped.
func MonthBuckets(list []Appointment, anchor time.Time) []DayBucket {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	buckets := make([]DayBucket, daysInMonth)
	for i := range buckets {
		day := first.AddDate(0, 0, i)
		buckets[i] = DayBucket{Date: day.Format("2006-01-02"), Appointments: []Appointment{}}
	}

	for _, a := range list {
		t, err := dates.Parse(a.Date)
		if err != nil {
			continue
		}
		if t.Year() != anchor.Year() || t.Month() != anchor.Month() {
			continue
		}
		i := t.Day() - 1
		buckets[i].Appointments = append(buckets[i].Appointments, a)
	}

	sortBucketsByTime(buckets)
	return buckets
}

// WeekBuckets returns seven buckets for the Monday-to-Sunday week containing
// the anchor.
func WeekBuckets(list []Appointment, anchor time.Time) []DayBucket {
	// Wall-clock week: record dates parse as UTC regardless of the
	// anchor's zone.
	monday := dates.StartOfWeek(dates.Wall(anchor))

	buckets := make([]DayBucket, 7)
	days := make([]time.Time, 7)
	for i := range buckets {
		days[i] = monday.AddDate(0, 0, i)
		buckets[i] = DayBucket{Date: days[i].Format("2006-01-02"), Appointments: []Appointment{}}
	}

	for _, a := range list {
		t, err := dates.Parse(a.Date)
		if err != nil {
			continue
		}
		for i, day := range days {
			if dates.SameDay(t, day) {
				buckets[i].Appointments = append(buckets[i].Appointments, a)
				break
			}
		}
	}

	sortBucketsByTime(buckets)
	return buckets
}

// DayBuckets returns one bucket per working hour of the anchor day.
// Appointments outside working hours are dropped from the view.
func DayBuckets(list []Appointment, anchor time.Time) []HourBucket {
	buckets := make([]HourBucket, 0, dayViewLastHour-dayViewFirstHour+1)
	for hour := dayViewFirstHour; hour <= dayViewLastHour; hour++ {
		buckets = append(buckets, HourBucket{Hour: hour, Appointments: []Appointment{}})
	}

	for _, a := range list {
		t, err := dates.Parse(a.Date)
		if err != nil {
			continue
		}
		if !dates.SameDay(t, anchor) {
			continue
		}
		hour := t.Hour()
		if hour < dayViewFirstHour || hour > dayViewLastHour {
			continue
		}
		i := hour - dayViewFirstHour
		buckets[i].Appointments = append(buckets[i].Appointments, a)
	}
	return buckets
}

func sortBucketsByTime(buckets []DayBucket) {
	for i := range buckets {
		appts := buckets[i].Appointments
		sort.SliceStable(appts, func(a, b int) bool {
			return appts[a].Date < appts[b].Date
		})
	}
}
