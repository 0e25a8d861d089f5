package payment_webhook

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
	completePayment "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_payment"
)

// EventParser проверяет подпись и разбирает событие шлюза
type EventParser interface {
	ParseEvent(payload []byte, signature string) (*stripegateway.PaymentEvent, error)
}

type CompletePaymentUseCase interface {
	Execute(ctx context.Context, req *completePayment.Request) (*completePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
