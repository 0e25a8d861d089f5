package update_order_status

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на смену статуса заказа
type Request struct {
	AccountID  uuid.UUID // Аккаунт владельца, выполняющего действие
	BusinessID uuid.UUID // ID бизнеса из пути
	OrderID    uuid.UUID // ID заказа
	Status     string    // approved, declined или completed
}

// Response модель ответа с обновлённым заказом
type Response struct {
	ID        uuid.UUID
	Status    string
	Start     time.Time
	End       time.Time
	Version   int64
	UpdatedAt time.Time
}
