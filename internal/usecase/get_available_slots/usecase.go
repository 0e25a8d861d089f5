package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
)

// UseCase use case для получения свободных слотов услуги на день
type UseCase struct {
	businessRepo BusinessRepository
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	availability AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, offering=%s, date=%s",
		req.BusinessID, req.OfferingID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес вместе с услугами и расписанием
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%s not found", req.BusinessID)
			return nil, domain.ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("GetAvailableSlots: business id=%s is inactive", req.BusinessID)
		return nil, domain.ErrBusinessNotFound
	}

	// 4. Ищем услугу среди живых услуг бизнеса
	offering, ok := findOffering(business, req)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: offering id=%s not found in business id=%s", req.OfferingID, req.BusinessID)
		return nil, domain.ErrOfferingNotFound
	}

	// 5. Считаем свободные слоты на день в часовом поясе бизнеса
	day := availability.Day(business, req.Date)
	free, err := uc.availability.FreeSlots(ctx, business, offering.Duration, day, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(free))
	for _, s := range free {
		slots = append(slots, Slot{Start: s.Start, End: s.End})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for business=%s, offering=%s, date=%s",
		len(slots), req.BusinessID, req.OfferingID, day.Format(domain.DateFormat))

	return &Response{
		BusinessID: business.ID,
		OfferingID: offering.ID,
		Date:       day,
		TimeZone:   day.Location().String(),
		Duration:   offering.Duration,
		Slots:      slots,
	}, nil
}

func findOffering(b *domain.Business, req *Request) (*domain.Offering, bool) {
	for i := range b.Offerings {
		if b.Offerings[i].ID == req.OfferingID && !b.Offerings[i].IsDeleted() {
			return &b.Offerings[i], true
		}
	}
	return nil, false
}
