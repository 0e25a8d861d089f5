package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidOfferingID = "некорректный ID услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound  = "бизнес не найден"
	msgOfferingNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/offerings/{offeringId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	offeringID, err := handlers.PathUUID(r, "offeringId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Invalid offering ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, offeringID, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, domain.ErrOfferingNotFound):
			h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Offering not found: business_id=%s, offering_id=%s",
				businessID, offeringID)
			handlers.RespondNotFound(w, msgOfferingNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /businesses/{id}/offerings/{id}/slots - Validation failed: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("GET /businesses/{id}/offerings/{id}/slots - Failed to get slots: business_id=%s, offering_id=%s, error=%v",
				businessID, offeringID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/offerings/{id}/slots - Slots retrieved successfully: business_id=%s, offering_id=%s, slots_count=%d",
		businessID, offeringID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
