package businesses

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

type BusinessService interface {
	CreateBusiness(ctx context.Context, req *models.CreateBusinessRequest) (*models.BusinessResponse, error)
	UpdateBusiness(ctx context.Context, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error)
	GetBySign(ctx context.Context, sign string) (*models.BusinessResponse, error)
	ListMine(ctx context.Context, accountID uuid.UUID) ([]*models.BusinessResponse, error)
	SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
