package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	ActiveRanges(ctx context.Context, businessID uuid.UUID, window domain.TimeRange, now time.Time) ([]domain.TimeRange, error)
}

// BlockedRepository интерфейс репозитория закрытых периодов
type BlockedRepository interface {
	List(ctx context.Context, businessID uuid.UUID, window *domain.TimeRange) ([]domain.BlockedPeriod, error)
}
