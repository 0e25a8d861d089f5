package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
	completePayment "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_payment"
)

// SignatureHeader заголовок с подписью вебхука
const SignatureHeader = "Stripe-Signature"

const maxPayloadBytes = 64 << 10

const (
	msgInvalidPayload   = "некорректное событие"
	msgInvalidSignature = "некорректная подпись"
	msgOrderNotFound    = "заказ не найден"
	msgInvalidAmount    = "сумма платежа не совпадает с заказом"
	msgConflict         = "платёж обрабатывается повторно, попробуйте позже"
)

// Ack ответ шлюзу
type Ack struct {
	Received bool `json:"received"`
}

type Handler struct {
	parser  EventParser
	useCase CompletePaymentUseCase
	logger  Logger
}

func NewHandler(parser EventParser, useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// 2xx останавливает повторные доставки шлюза, поэтому дубликаты и чужие события подтверждаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.parser.ParseEvent(payload, r.Header.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, stripegateway.ErrIgnoredEvent):
			h.logger.Info("POST /payments/webhook - Event ignored: %v", err)
			handlers.RespondJSON(w, http.StatusOK, Ack{Received: true})

		case errors.Is(err, stripegateway.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		default:
			h.logger.Warn("POST /payments/webhook - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completePayment.Request{
		IntentID:       event.IntentID,
		AmountReceived: event.AmountReceived,
		OrderID:        event.OrderID,
		Tip:            event.Tip,
	})
	if err != nil {
		switch {
		// до ErrUnknownOrder: дубликат оборачивает его
		case errors.Is(err, completePayment.ErrDuplicateDelivery):
			h.logger.Info("POST /payments/webhook - Duplicate delivery: order_id=%s, intent_id=%s",
				event.OrderID, event.IntentID)
			handlers.RespondJSON(w, http.StatusOK, Ack{Received: true})

		case errors.Is(err, domain.ErrUnknownOrder):
			h.logger.Error("POST /payments/webhook - Unknown order: order_id=%s, intent_id=%s",
				event.OrderID, event.IntentID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Error("POST /payments/webhook - Invalid payment amounts: order_id=%s, received=%d, tip=%d, error=%v",
				event.OrderID, event.AmountReceived, event.Tip, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("POST /payments/webhook - Concurrent delivery: order_id=%s", event.OrderID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /payments/webhook - Failed to complete payment: order_id=%s, error=%v", event.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Payment completed: order_id=%s, base=%d, tip=%d, fee=%d, total=%d",
		result.OrderID, result.Base, result.Tip, result.Fee, result.Total)
	handlers.RespondJSON(w, http.StatusOK, Ack{Received: true})
}
