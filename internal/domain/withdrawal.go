package domain

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus represents the status of a payout
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusSucceeded WithdrawalStatus = "succeeded"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// Withdrawal is a payout request completed by an operator.
type Withdrawal struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	Amount      int64
	Status      WithdrawalStatus
	Version     int64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Complete marks the payout as succeeded.
func (w *Withdrawal) Complete(now time.Time) error {
	switch w.Status {
	case WithdrawalStatusSucceeded:
		return ErrAlreadyCompleted
	case WithdrawalStatusFailed:
		return ErrInvalidTransition
	}
	w.Status = WithdrawalStatusSucceeded
	w.CompletedAt = &now
	return nil
}

// Fail marks the payout as failed; its amount becomes available again.
func (w *Withdrawal) Fail(now time.Time) error {
	switch w.Status {
	case WithdrawalStatusSucceeded:
		return ErrAlreadyCompleted
	case WithdrawalStatusFailed:
		return ErrInvalidTransition
	}
	w.Status = WithdrawalStatusFailed
	w.CompletedAt = &now
	return nil
}
