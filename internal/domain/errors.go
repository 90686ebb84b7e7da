package domain

import "errors"

// Core error taxonomy. Services wrap these with fmt.Errorf("%w: ...") so the
// HTTP boundary can map them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAmountMismatch    = errors.New("payment amount does not match order total")
	ErrAlreadyPaid       = errors.New("order already paid")
)
