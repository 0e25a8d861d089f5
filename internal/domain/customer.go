package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is identified by email and refreshed on every order.
type Customer struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeCustomer trims every field and lowercases the email.
func NormalizeCustomer(c Customer) (Customer, error) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)

	if _, err := mail.ParseAddress(c.Email); err != nil {
		return Customer{}, NewValidationError("invalid email")
	}
	if c.FirstName == "" || c.LastName == "" {
		return Customer{}, NewValidationError("first and last name are required")
	}
	return c, nil
}

// CustomerSummary customer of a business with its order count
type CustomerSummary struct {
	Customer
	Orders      int
	LastOrderAt time.Time
}
