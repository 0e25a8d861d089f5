package start_payment

import (
	"github.com/google/uuid"

	startPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/start_payment"
)

// StartPaymentRequest HTTP request model, тело можно не передавать
type StartPaymentRequest struct {
	Tip int64 `json:"tip"`
}

// StartPaymentResponse данные для подтверждения оплаты на клиенте
type StartPaymentResponse struct {
	OrderID      uuid.UUID `json:"orderId"`
	IntentID     string    `json:"intentId"`
	ClientSecret string    `json:"clientSecret"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
}

func FromUseCaseResponse(resp *startPayment.Response) *StartPaymentResponse {
	return &StartPaymentResponse{
		OrderID:      resp.OrderID,
		IntentID:     resp.IntentID,
		ClientSecret: resp.ClientSecret,
		Amount:       resp.Amount,
		Currency:     resp.Currency,
	}
}
