package start_payment

import "github.com/google/uuid"

// Request модель запроса клиента на оплату
type Request struct {
	OrderID uuid.UUID
	Tip     int64 // Чаевые в центах, не отрицательные
}

// Response данные для подтверждения оплаты на клиенте
type Response struct {
	OrderID      uuid.UUID
	IntentID     string
	ClientSecret string
	Amount       int64
	Currency     string
}
