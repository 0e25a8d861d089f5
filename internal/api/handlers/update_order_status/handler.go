package update_order_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	updateOrderStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/update_order_status"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidOrderID         = "некорректный ID заказа"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgOrderNotFound          = "заказ не найден"
	msgInvalidTransition      = "недопустимая смена статуса"
	msgAlreadyPaid            = "оплаченный заказ нельзя отклонить"
	msgPastStartTime          = "время заказа уже прошло"
	msgConcurrentModification = "заказ был изменён, обновите данные"
)

type Handler struct {
	useCase UpdateOrderStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOrderStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/businesses/{businessId}/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	orderID, err := handlers.PathUUID(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateOrderStatus.Request{
		AccountID:  accountID,
		BusinessID: businessID,
		OrderID:    orderID,
		Status:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOrder), errors.Is(err, domain.ErrBusinessNotFound):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Order not found: business_id=%s, order_id=%s",
				businessID, orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Access denied: business_id=%s, account_id=%s",
				businessID, accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Invalid transition: order_id=%s, status=%s",
				orderID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrAlreadyPaid):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Order already paid: order_id=%s", orderID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, domain.ErrPastStartTime):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Start time passed: order_id=%s", orderID)
			handlers.RespondBadRequest(w, msgPastStartTime)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Concurrent modification: order_id=%s", orderID)
			handlers.RespondConflict(w, msgConcurrentModification)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /businesses/{id}/orders/{id}/status - Validation failed: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PATCH /businesses/{id}/orders/{id}/status - Failed to update status: order_id=%s, error=%v",
				orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{id}/orders/{id}/status - Status updated: order_id=%s, status=%s",
		orderID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
