package create_order

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

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, c *domain.Customer) error
}

// AvailabilityService интерфейс расчёта свободных слотов
type AvailabilityService interface {
	FreeSlots(ctx context.Context, b *domain.Business, duration time.Duration, day, now time.Time) ([]domain.TimeRange, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	NotifyBusinessOwner(accountID uuid.UUID, kind notify.Kind, payload notify.Payload)
	NotifyCustomer(email string, kind notify.Kind, payload notify.Payload)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	OrderCreated()
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
