package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusCompleted OrderStatus = "completed"
)

// ParseOrderStatus validates a status string
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusApproved, OrderStatusDeclined, OrderStatusCompleted:
		return st, nil
	default:
		return "", NewValidationError("unknown order status " + s)
	}
}

// IsTerminal declined and completed orders never change status again
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDeclined || s == OrderStatusCompleted
}

// Order is a customer's booking of one slot.
// Price, Title, Description and Image are copied from the offering at creation.
type Order struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	OfferingID uuid.UUID
	CustomerID uuid.UUID

	Price       int64
	Title       string
	Description string
	Image       *string
	Currency    string

	Range            TimeRange
	Status           OrderStatus
	Note             *string
	PaymentRequested bool
	Payment          *Payment
	Version          int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment is embedded in its order and created lazily by StartPayment.
type Payment struct {
	IntentID    string
	Base        int64
	Tip         int64
	Fee         int64
	Total       int64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (p *Payment) IsCompleted() bool {
	return p != nil && p.CompletedAt != nil
}

// Transition moves the order to target, checking the guards of the lifecycle.
func (o *Order) Transition(target OrderStatus, now time.Time) error {
	if target == OrderStatusPending || o.Status.IsTerminal() {
		return ErrInvalidTransition
	}

	switch target {
	case OrderStatusApproved:
		if o.Status != OrderStatusPending {
			return ErrInvalidTransition
		}
		if o.Range.Start.Before(now) {
			return ErrPastStartTime
		}
	case OrderStatusDeclined:
		if o.Payment != nil {
			return ErrAlreadyPaid
		}
	case OrderStatusCompleted:
		if o.Status != OrderStatusApproved {
			return ErrNotApproved
		}
	default:
		return ErrInvalidTransition
	}

	o.Status = target
	o.UpdatedAt = now
	return nil
}

// RequestPayment sets the price to charge. Status does not change.
func (o *Order) RequestPayment(price int64, now time.Time) error {
	if o.Status != OrderStatusApproved {
		return ErrNotApproved
	}
	if err := ValidatePrice(price); err != nil {
		return err
	}
	o.Price = price
	o.PaymentRequested = true
	o.UpdatedAt = now
	return nil
}

// CanStartPayment checks the preconditions of payment intent issuance.
func (o *Order) CanStartPayment() error {
	if !o.PaymentRequested {
		return ErrPaymentNotRequested
	}
	if o.Status == OrderStatusDeclined {
		return ErrInvalidTransition
	}
	if o.Payment.IsCompleted() || (o.Payment != nil && o.Payment.Total >= o.Price) {
		return ErrAlreadyPaid
	}
	return nil
}

// CompletePayment applies a gateway completion to the embedded payment.
// A second call fails with ErrUnknownOrder so duplicate deliveries are detectable.
func (o *Order) CompletePayment(received, tip int64, rate decimal.Decimal, now time.Time) error {
	if o.Payment == nil || o.Payment.IsCompleted() {
		return ErrUnknownOrder
	}
	split, err := SplitPayment(received, tip, rate)
	if err != nil {
		return err
	}
	o.Payment.Base = split.Base
	o.Payment.Tip = split.Tip
	o.Payment.Fee = split.Fee
	o.Payment.Total = split.Total
	o.Payment.CompletedAt = &now
	o.UpdatedAt = now
	return nil
}

// OrderFilter owner listing filter
type OrderFilter struct {
	BusinessID uuid.UUID
	Status     *OrderStatus
	From       *time.Time // start >= From
	To         *time.Time // start < To
}
