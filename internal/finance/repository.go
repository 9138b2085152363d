package finance

import "sync"

// Repository defines storage operations for transactions.
type Repository interface {
	List() []Transaction
	Get(id string) (Transaction, error)
	Add(t Transaction) error
	Replace(t Transaction) error
	Remove(id string) error
}

// InMemoryRepository is a thread-safe in-memory implementation of Repository.
type InMemoryRepository struct {
	mu           sync.RWMutex
	transactions []Transaction
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// List returns a copy of all transactions.
func (r *InMemoryRepository) List() []Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}

// Get returns the transaction with the given id.
func (r *InMemoryRepository) Get(id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return Transaction{}, ErrNotFound
}

// Add appends a new transaction.
func (r *InMemoryRepository) Add(t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = append(r.transactions, t)
	return nil
}

// Replace swaps the stored transaction with the same ID for t.
func (r *InMemoryRepository) Replace(t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.transactions {
		if r.transactions[i].ID == t.ID {
			r.transactions[i] = t
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes the transaction with the given id.
func (r *InMemoryRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.transactions {
		if r.transactions[i].ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
