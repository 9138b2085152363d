package patients

import "sync"

// Repository defines storage operations for patient records.
type Repository interface {
	List() []Patient
	Get(id string) (Patient, error)
	Add(p Patient) error
	Replace(p Patient) error
	Remove(id string) error
}

// InMemoryRepository is a thread-safe in-memory implementation of Repository.
// Records keep their insertion order.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients []Patient
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// List returns a copy of all patient records.
func (r *InMemoryRepository) List() []Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

// Get returns the patient with the given id.
func (r *InMemoryRepository) Get(id string) (Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, ErrNotFound
}

// Add appends a new patient record.
func (r *InMemoryRepository) Add(p Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.patients = append(r.patients, p)
	return nil
}

// Replace swaps the stored record with the same ID for p.
func (r *InMemoryRepository) Replace(p Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == p.ID {
			r.patients[i] = p
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes the patient with the given id.
func (r *InMemoryRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
