package request_payment

import (
	"time"

	"github.com/google/uuid"

	requestPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/request_payment"
)

// RequestPaymentRequest HTTP request model
type RequestPaymentRequest struct {
	Price int64 `json:"price"` // Итоговая цена в центах
}

// RequestPaymentResponse HTTP response model
type RequestPaymentResponse struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	Price            int64     `json:"price"`
	Currency         string    `json:"currency"`
	PaymentRequested bool      `json:"paymentRequested"`
	Version          int64     `json:"version"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromUseCaseResponse(resp *requestPayment.Response) *RequestPaymentResponse {
	return &RequestPaymentResponse{
		ID:               resp.ID,
		Status:           resp.Status,
		Price:            resp.Price,
		Currency:         resp.Currency,
		PaymentRequested: resp.PaymentRequested,
		Version:          resp.Version,
		UpdatedAt:        resp.UpdatedAt,
	}
}
