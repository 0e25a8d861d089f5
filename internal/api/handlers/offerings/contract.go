package offerings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

type OfferingService interface {
	AddOffering(ctx context.Context, req *models.AddOfferingRequest) (*models.BusinessResponse, error)
	UpdateOffering(ctx context.Context, req *models.UpdateOfferingRequest) (*models.BusinessResponse, error)
	DeleteOffering(ctx context.Context, req *models.DeleteOfferingRequest) (*models.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
