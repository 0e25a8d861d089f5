package withdraw

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// OrderRepository источник проведённых платежей
type OrderRepository interface {
	CompletedPayments(ctx context.Context, businessID uuid.UUID) ([]domain.CompletedPayment, error)
}

// WithdrawalRepository интерфейс репозитория выплат
type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Withdrawal, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	NotifyOperator(kind notify.Kind, payload notify.Payload)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	WithdrawalRequested()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
