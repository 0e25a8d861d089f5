package withdraw

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	withdrawUC "github.com/m04kA/SMC-ReservationService/internal/usecase/withdraw"
)

// WithdrawalResponse HTTP response model
type WithdrawalResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"businessId"`
	Amount          int64     `json:"amount"`
	AmountFormatted string    `json:"amountFormatted"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromUseCaseResponse(resp *withdrawUC.Response) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		Amount:          resp.Amount,
		AmountFormatted: domain.FormatAmount(resp.Amount),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt,
	}
}
