package start_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	startPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/start_payment"
)

const (
	msgInvalidOrderID      = "некорректный ID заказа"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgOrderNotFound       = "заказ не найден"
	msgPaymentNotRequested = "оплата заказа ещё не запрошена"
	msgAlreadyPaid         = "заказ уже оплачен"
	msgOrderDeclined       = "заказ отклонён"
	msgInvalidAmount       = "некорректная сумма"
	msgGatewayUnavailable  = "платёжный сервис недоступен, попробуйте позже"
)

type Handler struct {
	useCase StartPaymentUseCase
	logger  Logger
}

func NewHandler(useCase StartPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathUUID(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /orders/{id}/payment - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req StartPaymentRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /orders/{id}/payment - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &startPayment.Request{OrderID: orderID, Tip: req.Tip})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOrder):
			h.logger.Warn("POST /orders/{id}/payment - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, domain.ErrPaymentNotRequested):
			h.logger.Warn("POST /orders/{id}/payment - Payment not requested: order_id=%s", orderID)
			handlers.RespondConflict(w, msgPaymentNotRequested)

		case errors.Is(err, domain.ErrAlreadyPaid):
			h.logger.Warn("POST /orders/{id}/payment - Order already paid: order_id=%s", orderID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /orders/{id}/payment - Order declined: order_id=%s", orderID)
			handlers.RespondConflict(w, msgOrderDeclined)

		case errors.Is(err, domain.ErrInvalidAmount):
			h.logger.Warn("POST /orders/{id}/payment - Invalid amount: order_id=%s, tip=%d", orderID, req.Tip)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, domain.ErrExternalService):
			h.logger.Error("POST /orders/{id}/payment - Payment gateway failed: order_id=%s, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /orders/{id}/payment - Failed to start payment: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/payment - Payment started: order_id=%s, intent_id=%s, amount=%d",
		orderID, result.IntentID, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
