package start_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, md stripegateway.Metadata) (*stripegateway.Intent, error)
	UpdateIntent(ctx context.Context, intentID string, amount int64, md stripegateway.Metadata) (*stripegateway.Intent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
