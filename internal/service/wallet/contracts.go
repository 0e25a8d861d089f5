package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// OrderRepository источник проведённых платежей
type OrderRepository interface {
	CompletedPayments(ctx context.Context, businessID uuid.UUID) ([]domain.CompletedPayment, error)
	CountCompleted(ctx context.Context, businessID uuid.UUID) (int, error)
}

// WithdrawalRepository интерфейс репозитория выплат
type WithdrawalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Withdrawal, error)
	Update(ctx context.Context, w *domain.Withdrawal) error
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
