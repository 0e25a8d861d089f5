package withdraw

import (
	"context"

	withdrawUC "github.com/m04kA/SMC-ReservationService/internal/usecase/withdraw"
)

type WithdrawUseCase interface {
	Execute(ctx context.Context, req *withdrawUC.Request) (*withdrawUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
