package request_payment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на оплату заказа
type Request struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
	OrderID    uuid.UUID
	Price      int64 // Итоговая цена в центах
}

// Response модель ответа
type Response struct {
	ID               uuid.UUID
	Status           string
	Price            int64
	Currency         string
	PaymentRequested bool
	Version          int64
	UpdatedAt        time.Time
}
