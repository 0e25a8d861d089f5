package stripegateway

import "github.com/google/uuid"

const (
	metadataOrderID = "orderId"
	metadataTip     = "tip"

	eventPaymentSucceeded = "payment_intent.succeeded"
)

// Metadata данные заказа, которые шлюз возвращает в вебхуке
type Metadata struct {
	OrderID uuid.UUID
	Tip     int64
}

// Intent намерение оплаты
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

// PaymentEvent проверенное событие успешной оплаты
type PaymentEvent struct {
	IntentID       string
	AmountReceived int64
	OrderID        uuid.UUID
	Tip            int64
}
