package business

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/geocoding"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetBySign(ctx context.Context, sign string) (*domain.Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	SignExists(ctx context.Context, sign string, exclude uuid.UUID) (bool, error)
	SaveOfferings(ctx context.Context, businessID uuid.UUID, offerings []domain.Offering) error
	ReplaceSchedule(ctx context.Context, businessID uuid.UUID, entries []domain.ScheduleEntry) error
}

// BlockedRepository интерфейс репозитория закрытых интервалов
type BlockedRepository interface {
	Create(ctx context.Context, p *domain.BlockedPeriod) error
	List(ctx context.Context, businessID uuid.UUID, window *domain.TimeRange) ([]domain.BlockedPeriod, error)
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

// Geocoder определяет адрес и часовой пояс по координатам
type Geocoder interface {
	Resolve(ctx context.Context, latitude, longitude float64) (*geocoding.Place, error)
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
