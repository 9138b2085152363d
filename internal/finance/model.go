// Package finance manages the practice ledger: income and expense
// transactions, totals and exports.
package finance

import "strings"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

const defaultCategory = "General"

// Transaction is one ledger entry. Amount is always positive; Type carries
// the direction.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
}

// CreateRequest carries the fields of a new or updated transaction.
type CreateRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
}

// Validate checks the request for required fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrDescriptionRequired
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	switch r.Type {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidType
	}
	return nil
}
