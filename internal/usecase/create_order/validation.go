package create_order

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}

	if req.OfferingID == uuid.Nil {
		return fmt.Errorf("%w: offeringID is required", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}
