package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Service свободные слоты бизнеса на день
// Внутри транзакции чтения идут через неё, поэтому create_order пересчитывает слоты в той же транзакции, что и вставка
type Service struct {
	orderRepo   OrderRepository
	blockedRepo BlockedRepository
}

// NewService создает новый экземпляр сервиса
func NewService(orderRepo OrderRepository, blockedRepo BlockedRepository) *Service {
	return &Service{
		orderRepo:   orderRepo,
		blockedRepo: blockedRepo,
	}
}

// Day календарный день date в часовом поясе бизнеса (полночь)
func Day(b *domain.Business, date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.Loc())
}

// FreeSlots свободные слоты длительностью duration на день day
// day должен быть результатом Day: его часовой пояс определяет рабочие часы
// Если на этот день недели нет расписания, возвращается пустой список
func (s *Service) FreeSlots(ctx context.Context, b *domain.Business, duration time.Duration, day, now time.Time) ([]domain.TimeRange, error) {
	entry, ok := b.ScheduleFor(day.Weekday())
	if !ok {
		return []domain.TimeRange{}, nil
	}

	window, err := domain.DayWindow(day, entry)
	if err != nil {
		return nil, fmt.Errorf("%w: build window: %v", ErrInternal, err)
	}

	orders, err := s.orderRepo.ActiveRanges(ctx, b.ID, window, now)
	if err != nil {
		return nil, fmt.Errorf("%w: load orders: %v", ErrInternal, err)
	}

	periods, err := s.blockedRepo.List(ctx, b.ID, &window)
	if err != nil {
		return nil, fmt.Errorf("%w: load blocked periods: %v", ErrInternal, err)
	}

	blocked := make([]domain.TimeRange, 0, len(periods))
	for _, p := range periods {
		blocked = append(blocked, p.Range)
	}

	return domain.ComputeAvailability(window, duration, orders, blocked, now), nil
}
