package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	BusinessID      uuid.UUID       `json:"businessId"`
	OfferingID      uuid.UUID       `json:"offeringId"`
	TimeZone        string          `json:"timeZone"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный слот, время в часовом поясе бизнеса
type AvailableSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{Start: slot.Start, End: slot.End}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		OfferingID:      resp.OfferingID,
		TimeZone:        resp.TimeZone,
		DurationMinutes: int(resp.Duration / time.Minute),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case; дата без времени
func ToUseCaseRequest(businessID, offeringID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		OfferingID: offeringID,
		Date:       date,
	}, nil
}
