package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/orders/models"
)

type OrderService interface {
	GetOrders(ctx context.Context, req *models.GetOrdersRequest) ([]*models.OrderResponse, error)
	GetOrder(ctx context.Context, accountID, businessID, orderID uuid.UUID) (*models.OrderResponse, error)
	GetOrderLite(ctx context.Context, orderID uuid.UUID) (*models.OrderLiteResponse, error)
	GetCustomers(ctx context.Context, accountID, businessID uuid.UUID) ([]models.CustomerSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
