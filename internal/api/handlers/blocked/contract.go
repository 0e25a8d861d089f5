package blocked

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

type BlockedService interface {
	AddBlocked(ctx context.Context, req *models.AddBlockedRequest) (*models.BlockedResponse, error)
	ListBlocked(ctx context.Context, req *models.ListBlockedRequest) ([]models.BlockedResponse, error)
	DeleteBlocked(ctx context.Context, req *models.DeleteBlockedRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
