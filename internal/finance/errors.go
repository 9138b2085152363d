package finance

import "errors"

var (
	// ErrNotFound is returned when a transaction does not exist.
	ErrNotFound = errors.New("finance: transaction not found")

	// ErrDescriptionRequired is returned when a request omits the description.
	ErrDescriptionRequired = errors.New("finance: description is required")

	// ErrInvalidAmount is returned when the amount is zero or negative.
	ErrInvalidAmount = errors.New("finance: amount must be positive")

	// ErrInvalidType is returned for an unknown transaction type.
	ErrInvalidType = errors.New("finance: invalid transaction type")
)
