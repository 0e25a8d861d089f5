package domain

import "errors"

// Error categories. Every domain error unwraps to exactly one of them.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service error")
	ErrForbidden       = errors.New("forbidden")
)

var (
	ErrInvalidRange  = newError(ErrValidation, "invalid time range")
	ErrPastStartTime = newError(ErrValidation, "order start time has already passed")
	ErrInvalidAmount = newError(ErrValidation, "invalid amount")

	ErrSlotUnavailable        = newError(ErrConflict, "slot is unavailable")
	ErrAlreadyPaid            = newError(ErrConflict, "order is already paid")
	ErrNotApproved            = newError(ErrConflict, "order is not approved")
	ErrConcurrentModification = newError(ErrConflict, "concurrent modification")
	ErrAlreadyCompleted       = newError(ErrConflict, "already completed")
	ErrInvalidTransition      = newError(ErrConflict, "invalid status transition")
	ErrPaymentNotRequested    = newError(ErrConflict, "payment was not requested")
	ErrSignTaken              = newError(ErrConflict, "sign is already taken")

	ErrUnknownOrder       = newError(ErrNotFound, "unknown order")
	ErrBusinessNotFound   = newError(ErrNotFound, "business not found")
	ErrOfferingNotFound   = newError(ErrNotFound, "offering not found")
	ErrWithdrawalNotFound = newError(ErrNotFound, "withdrawal not found")
	ErrBlockedNotFound    = newError(ErrNotFound, "blocked period not found")

	// ErrAccessDenied the caller does not own the business
	ErrAccessDenied = newError(ErrForbidden, "access denied")
)

// Error domain error with a category
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// NewValidationError builds a one-off validation error with a human-readable message
func NewValidationError(msg string) error {
	return newError(ErrValidation, msg)
}
