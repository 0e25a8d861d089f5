package notify

import "time"

// Audience получатель уведомления
type Audience string

const (
	AudienceOwner    Audience = "owner"
	AudienceCustomer Audience = "customer"
	AudienceOperator Audience = "operator"
)

// Kind тип события
type Kind string

const (
	KindOrderReceived       Kind = "order.received"
	KindOrderStatusChanged  Kind = "order.status_changed"
	KindPaymentRequested    Kind = "payment.requested"
	KindPaymentReceived     Kind = "payment.received"
	KindWithdrawalRequested Kind = "withdrawal.requested"
)

// Event уведомление, которое уходит во все каналы
// Recipient: id аккаунта владельца, email клиента или комната операторов
type Event struct {
	Audience  Audience  `json:"audience"`
	Recipient string    `json:"recipient"`
	Kind      Kind      `json:"kind"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payload содержимое уведомления
type Payload struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	BusinessID string `json:"businessId,omitempty"`
	OrderID    string `json:"orderId,omitempty"`
	Status     string `json:"status,omitempty"`
	Amount     string `json:"amount,omitempty"`
}
