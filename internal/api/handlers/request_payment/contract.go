package request_payment

import (
	"context"

	requestPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/request_payment"
)

type RequestPaymentUseCase interface {
	Execute(ctx context.Context, req *requestPayment.Request) (*requestPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
