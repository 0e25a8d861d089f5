package withdraw

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на выплату всего доступного баланса
type Request struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
}

// Response созданная выплата
type Response struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Amount     int64
	Status     string
	CreatedAt  time.Time
}
