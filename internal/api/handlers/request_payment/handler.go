package request_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	requestPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/request_payment"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidOrderID         = "некорректный ID заказа"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgOrderNotFound          = "заказ не найден"
	msgNotApproved            = "оплату можно запросить только для подтверждённого заказа"
	msgConcurrentModification = "заказ был изменён, обновите данные"
)

type Handler struct {
	useCase RequestPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RequestPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/orders/{orderId}/payment-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	orderID, err := handlers.PathUUID(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req RequestPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestPayment.Request{
		AccountID:  accountID,
		BusinessID: businessID,
		OrderID:    orderID,
		Price:      req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOrder), errors.Is(err, domain.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Order not found: business_id=%s, order_id=%s",
				businessID, orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Access denied: business_id=%s, account_id=%s",
				businessID, accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotApproved):
			h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Order not approved: order_id=%s", orderID)
			handlers.RespondConflict(w, msgNotApproved)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Concurrent modification: order_id=%s", orderID)
			handlers.RespondConflict(w, msgConcurrentModification)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /businesses/{id}/orders/{id}/payment-request - Validation failed: price=%d, error=%v",
				req.Price, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /businesses/{id}/orders/{id}/payment-request - Failed to request payment: order_id=%s, error=%v",
				orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/orders/{id}/payment-request - Payment requested: order_id=%s, price=%d",
		orderID, result.Price)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
