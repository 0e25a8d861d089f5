package create_order

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание заказа
type Request struct {
	BusinessID uuid.UUID // ID бизнеса
	OfferingID uuid.UUID // ID услуги
	Start      time.Time // Начало слота, должно совпадать со свободным слотом

	// Данные клиента, по email клиент создаётся или обновляется
	Email     string
	FirstName string
	LastName  string
	Phone     string

	Note *string // Комментарий к заказу (опционально)
}

// Response модель ответа с созданным заказом
type Response struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	OfferingID uuid.UUID
	CustomerID uuid.UUID

	// Снимок услуги на момент заказа
	Title       string
	Description string
	Image       *string
	Price       int64
	Currency    string

	Start  time.Time
	End    time.Time
	Status string
	Note   *string

	CreatedAt time.Time
}
