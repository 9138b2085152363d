package patients

import "strings"

// Status filter values accepted by Filter.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Filter narrows the patient list by a free-text query and an activity status.
// The query matches name or email, case-insensitively. An empty or unknown
// status behaves like StatusAll.
func Filter(list []Patient, query, status string) []Patient {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Patient, 0, len(list))
	for _, p := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Email), q) {
			continue
		}
		switch status {
		case StatusActive:
			if !p.Active {
				continue
			}
		case StatusInactive:
			if p.Active {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
