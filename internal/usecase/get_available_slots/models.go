package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса свободных слотов
type Request struct {
	BusinessID uuid.UUID // ID бизнеса
	OfferingID uuid.UUID // ID услуги, её длительность задаёт размер слота
	Date       time.Time // Календарный день; часовой пояс бизнеса применяется при расчёте
}

// Slot свободный слот
type Slot struct {
	Start time.Time
	End   time.Time
}

// Response модель ответа со свободными слотами
type Response struct {
	BusinessID uuid.UUID
	OfferingID uuid.UUID
	Date       time.Time
	TimeZone   string
	Duration   time.Duration
	Slots      []Slot
}
