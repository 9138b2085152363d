package appointments

import "sync"

// Repository defines storage operations for appointments.
type Repository interface {
	List() []Appointment
	Get(id string) (Appointment, error)
	Add(a Appointment) error
	Replace(a Appointment) error
	Remove(id string) error
	ListByPatient(patientID string) []Appointment
	RemoveByPatient(patientID string) int
}

// InMemoryRepository is a thread-safe in-memory implementation of Repository.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments []Appointment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// List returns a copy of all appointments.
func (r *InMemoryRepository) List() []Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out
}

// Get returns the appointment with the given id.
func (r *InMemoryRepository) Get(id string) (Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

// Add appends a new appointment.
func (r *InMemoryRepository) Add(a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments = append(r.appointments, a)
	return nil
}

// Replace swaps the stored appointment with the same ID for a.
func (r *InMemoryRepository) Replace(a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == a.ID {
			r.appointments[i] = a
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes the appointment with the given id.
func (r *InMemoryRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListByPatient returns all appointments for one patient.
func (r *InMemoryRepository) ListByPatient(patientID string) []Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out
}

// RemoveByPatient deletes every appointment for the patient and returns the
// number removed. Used when a patient record is deleted.
func (r *InMemoryRepository) RemoveByPatient(patientID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.appointments[:0]
	removed := 0
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.appointments = kept
	return removed
}
