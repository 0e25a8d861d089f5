package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/wallet/models"
)

type WalletService interface {
	GetWallet(ctx context.Context, accountID, businessID uuid.UUID) (*models.WalletResponse, error)
	CompleteWithdraw(ctx context.Context, withdrawalID uuid.UUID) (*models.WithdrawalResponse, error)
	FailWithdraw(ctx context.Context, withdrawalID uuid.UUID) (*models.WithdrawalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
