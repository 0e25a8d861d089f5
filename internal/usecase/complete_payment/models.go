package complete_payment

import (
	"time"

	"github.com/google/uuid"
)

// Request данные подтверждённого шлюзом платежа
type Request struct {
	IntentID       string
	AmountReceived int64
	OrderID        uuid.UUID
	Tip            int64
}

// Response разбивка проведённого платежа
type Response struct {
	OrderID     uuid.UUID
	Base        int64
	Tip         int64
	Fee         int64
	Total       int64
	CompletedAt time.Time
}
