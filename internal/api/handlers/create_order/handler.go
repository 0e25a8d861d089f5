package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgBusinessNotFound       = "бизнес не найден"
	msgOfferingNotFound       = "услуга не найдена"
	msgSlotUnavailable        = "выбранное время уже занято"
	msgConcurrentModification = "время бронируется другим клиентом, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/orders - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/orders - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, domain.ErrOfferingNotFound):
			h.logger.Warn("POST /businesses/{id}/orders - Offering not found: business_id=%s, offering_id=%s",
				businessID, req.OfferingID)
			handlers.RespondNotFound(w, msgOfferingNotFound)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /businesses/{id}/orders - Slot unavailable: business_id=%s, start=%s",
				businessID, req.Start)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("POST /businesses/{id}/orders - Concurrent booking: business_id=%s, start=%s",
				businessID, req.Start)
			handlers.RespondConflict(w, msgConcurrentModification)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /businesses/{id}/orders - Validation failed: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /businesses/{id}/orders - Failed to create order: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/orders - Order created successfully: order_id=%s, business_id=%s",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
