package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blocked"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/geocoding"
	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

// Service сервис реестра бизнесов: профиль, услуги, расписание и закрытые интервалы
type Service struct {
	businessRepo BusinessRepository
	blockedRepo  BlockedRepository
	geocoder     Geocoder
	txManager    TransactionManager
	now          func() time.Time
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	businessRepo BusinessRepository,
	blockedRepo BlockedRepository,
	geocoder Geocoder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		blockedRepo:  blockedRepo,
		geocoder:     geocoder,
		txManager:    txManager,
		now:          time.Now,
		logger:       logger,
	}
}

// CreateBusiness регистрирует бизнес аккаунта
// Адрес и часовой пояс определяются по координатам
func (s *Service) CreateBusiness(ctx context.Context, req *models.CreateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("CreateBusiness: account=%s, sign=%s", req.AccountID, req.Sign)

	// 1. Валидируем входные данные
	if req.AccountID == uuid.Nil {
		return nil, fmt.Errorf("%w: accountID is required", ErrInvalidInput)
	}
	sign, err := domain.NormalizeSign(req.Sign)
	if err != nil {
		return nil, err
	}
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	offerings := make([]domain.Offering, 0, len(req.Offerings))
	for _, in := range req.Offerings {
		offerings = append(offerings, in.ToDomain(uuid.New()))
	}
	offerings, err = domain.NormalizeOfferings(offerings)
	if err != nil {
		s.logger.Warn("CreateBusiness: invalid offerings: %v", err)
		return nil, err
	}

	schedule := models.ToDomainSchedule(req.Schedule)
	if err := domain.ValidateSchedule(schedule); err != nil {
		s.logger.Warn("CreateBusiness: invalid schedule: %v", err)
		return nil, err
	}

	// 2. Геокодируем координаты
	place, err := s.resolve(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &domain.Business{
		ID:             uuid.New(),
		OwnerAccountID: req.AccountID,
		Sign:           sign,
		Name:           name,
		Currency:       domain.DefaultCurrency,
		TimeZone:       place.TimeZone,
		Location:       place.Label,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		IsActive:       true,
		Offerings:      offerings,
		Schedule:       schedule,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range b.Offerings {
		b.Offerings[i].BusinessID = b.ID
	}

	// 3. Сохраняем в транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		taken, err := s.businessRepo.SignExists(txCtx, sign, uuid.Nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check sign: %v", ErrInternal, err)
		}
		if taken {
			return domain.ErrSignTaken
		}
		if err := s.businessRepo.Create(txCtx, b); err != nil {
			if errors.Is(err, businessRepo.ErrSignTaken) {
				return domain.ErrSignTaken
			}
			return fmt.Errorf("%w: failed to create business: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSignTaken) {
			s.logger.Warn("CreateBusiness: sign %s already taken", sign)
		} else {
			s.logger.Error("CreateBusiness: %v", err)
		}
		return nil, err
	}

	s.logger.Info("CreateBusiness: successfully created business id=%s (%s, %s)", b.ID, b.Location, b.TimeZone)
	return models.FromDomainBusiness(b), nil
}

// UpdateBusiness частично обновляет профиль бизнеса
func (s *Service) UpdateBusiness(ctx context.Context, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("UpdateBusiness: account=%s, business=%s", req.AccountID, req.BusinessID)

	var (
		sign, name *string
		place      *geocoding.Place
	)
	if req.Sign != nil {
		v, err := domain.NormalizeSign(*req.Sign)
		if err != nil {
			return nil, err
		}
		sign = &v
	}
	if req.Name != nil {
		v, err := domain.NormalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = &v
	}
	if req.HasCoordinates() {
		p, err := s.resolve(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			return nil, err
		}
		place = p
	}

	b, err := s.mutate(ctx, "UpdateBusiness", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		if req.Version != nil && *req.Version != b.Version {
			return domain.ErrConcurrentModification
		}
		if sign != nil && *sign != b.Sign {
			taken, err := s.businessRepo.SignExists(txCtx, *sign, b.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to check sign: %v", ErrInternal, err)
			}
			if taken {
				return domain.ErrSignTaken
			}
			b.Sign = *sign
		}
		if name != nil {
			b.Name = *name
		}
		if place != nil {
			b.Latitude, b.Longitude = *req.Latitude, *req.Longitude
			b.Location, b.TimeZone = place.Label, place.TimeZone
		}
		if req.IsActive != nil {
			b.IsActive = *req.IsActive
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBusiness(b), nil
}

// GetBySign публичная карточка бизнеса
// Неактивный бизнес не виден клиентам
func (s *Service) GetBySign(ctx context.Context, sign string) (*models.BusinessResponse, error) {
	s.logger.Info("GetBySign: sign=%s", sign)

	normalized, err := domain.NormalizeSign(sign)
	if err != nil {
		return nil, domain.ErrBusinessNotFound
	}

	b, err := s.businessRepo.GetBySign(ctx, normalized)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetBySign: business %s not found", normalized)
			return nil, domain.ErrBusinessNotFound
		}
		s.logger.Error("GetBySign: repository error for sign=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: GetBySign - repository error: %v", ErrInternal, err)
	}
	if !b.IsActive {
		return nil, domain.ErrBusinessNotFound
	}

	return models.FromDomainBusiness(b), nil
}

// ListMine бизнесы аккаунта
func (s *Service) ListMine(ctx context.Context, accountID uuid.UUID) ([]*models.BusinessResponse, error) {
	list, err := s.businessRepo.ListByOwner(ctx, accountID)
	if err != nil {
		s.logger.Error("ListMine: repository error for account=%s: %v", accountID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.BusinessResponse, 0, len(list))
	for _, b := range list {
		result = append(result, models.FromDomainBusiness(b))
	}
	return result, nil
}

// AddOffering добавляет услугу в конец списка (или по переданному индексу)
func (s *Service) AddOffering(ctx context.Context, req *models.AddOfferingRequest) (*models.BusinessResponse, error) {
	b, err := s.mutate(ctx, "AddOffering", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		offering := req.Offering.ToDomain(uuid.New())
		offering.BusinessID = b.ID
		if req.Offering.Index == 0 {
			offering.Index = len(b.Offerings)
		}
		return s.saveOfferings(txCtx, b, append(b.Offerings, offering), nil)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBusiness(b), nil
}

// UpdateOffering изменяет услугу; заказы хранят снимок и не меняются
func (s *Service) UpdateOffering(ctx context.Context, req *models.UpdateOfferingRequest) (*models.BusinessResponse, error) {
	b, err := s.mutate(ctx, "UpdateOffering", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		offerings := append([]domain.Offering(nil), b.Offerings...)
		i := indexOf(offerings, req.OfferingID)
		if i < 0 {
			return domain.ErrOfferingNotFound
		}
		req.Apply(&offerings[i])
		return s.saveOfferings(txCtx, b, offerings, nil)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBusiness(b), nil
}

// DeleteOffering мягко удаляет услугу, у бизнеса должна остаться хотя бы одна
func (s *Service) DeleteOffering(ctx context.Context, req *models.DeleteOfferingRequest) (*models.BusinessResponse, error) {
	b, err := s.mutate(ctx, "DeleteOffering", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		i := indexOf(b.Offerings, req.OfferingID)
		if i < 0 {
			return domain.ErrOfferingNotFound
		}
		deleted := b.Offerings[i]
		now := s.now()
		deleted.DeletedAt = &now

		rest := make([]domain.Offering, 0, len(b.Offerings)-1)
		rest = append(rest, b.Offerings[:i]...)
		rest = append(rest, b.Offerings[i+1:]...)
		return s.saveOfferings(txCtx, b, rest, &deleted)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBusiness(b), nil
}

// SetSchedule полностью заменяет недельное расписание
func (s *Service) SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.BusinessResponse, error) {
	schedule := models.ToDomainSchedule(req.Schedule)
	if err := domain.ValidateSchedule(schedule); err != nil {
		s.logger.Warn("SetSchedule: invalid schedule: %v", err)
		return nil, err
	}

	b, err := s.mutate(ctx, "SetSchedule", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		if err := s.businessRepo.ReplaceSchedule(txCtx, b.ID, schedule); err != nil {
			return fmt.Errorf("%w: failed to replace schedule: %v", ErrInternal, err)
		}
		b.Schedule = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBusiness(b), nil
}

// AddBlocked закрывает интервал для записи
func (s *Service) AddBlocked(ctx context.Context, req *models.AddBlockedRequest) (*models.BlockedResponse, error) {
	p := domain.BlockedPeriod{
		ID:         uuid.New(),
		BusinessID: req.BusinessID,
		Title:      req.Title,
		Range:      domain.TimeRange{Start: req.Start, End: req.End},
	}
	if err := domain.ValidateBlockedPeriod(p); err != nil {
		return nil, err
	}

	_, err := s.mutate(ctx, "AddBlocked", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		now := s.now()
		p.CreatedAt, p.UpdatedAt = now, now
		if err := s.blockedRepo.Create(txCtx, &p); err != nil {
			return fmt.Errorf("%w: failed to create blocked period: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBlocked(p)
	return &resp, nil
}

// ListBlocked закрытые интервалы бизнеса, опционально в окне [from, to)
func (s *Service) ListBlocked(ctx context.Context, req *models.ListBlockedRequest) ([]models.BlockedResponse, error) {
	window, err := req.Window()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.owned(ctx, "ListBlocked", req.AccountID, req.BusinessID); err != nil {
		return nil, err
	}

	list, err := s.blockedRepo.List(ctx, req.BusinessID, window)
	if err != nil {
		s.logger.Error("ListBlocked: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListBlocked - repository error: %v", ErrInternal, err)
	}

	result := make([]models.BlockedResponse, 0, len(list))
	for _, p := range list {
		result = append(result, models.FromDomainBlocked(p))
	}
	return result, nil
}

// DeleteBlocked открывает закрытый интервал
func (s *Service) DeleteBlocked(ctx context.Context, req *models.DeleteBlockedRequest) error {
	_, err := s.mutate(ctx, "DeleteBlocked", req.AccountID, req.BusinessID, func(txCtx context.Context, b *domain.Business) error {
		if err := s.blockedRepo.Delete(txCtx, b.ID, req.BlockedID); err != nil {
			if errors.Is(err, blockedRepo.ErrBlockedNotFound) {
				return domain.ErrBlockedNotFound
			}
			return fmt.Errorf("%w: failed to delete blocked period: %v", ErrInternal, err)
		}
		return nil
	})
	return err
}

// mutate выполняет изменение под блокировкой строки бизнеса и увеличивает его версию
func (s *Service) mutate(
	ctx context.Context,
	op string,
	accountID, businessID uuid.UUID,
	fn func(txCtx context.Context, b *domain.Business) error,
) (*domain.Business, error) {
	s.logger.Info("%s: account=%s, business=%s", op, accountID, businessID)

	var result *domain.Business
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.owned(txCtx, op, accountID, businessID)
		if err != nil {
			return err
		}
		if err := fn(txCtx, b); err != nil {
			return err
		}

		b.UpdatedAt = s.now()
		if err := s.businessRepo.Update(txCtx, b); err != nil {
			switch {
			case errors.Is(err, businessRepo.ErrVersionConflict):
				return domain.ErrConcurrentModification
			case errors.Is(err, businessRepo.ErrSignTaken):
				return domain.ErrSignTaken
			}
			return fmt.Errorf("%w: failed to update business: %v", ErrInternal, err)
		}

		result = b
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: business=%s: %v", op, businessID, err)
		} else {
			s.logger.Warn("%s: business=%s rejected: %v", op, businessID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: business id=%s is now at version %d", op, result.ID, result.Version)
	return result, nil
}

// owned загружает бизнес и проверяет, что аккаунт его владелец
func (s *Service) owned(ctx context.Context, op string, accountID, businessID uuid.UUID) (*domain.Business, error) {
	b, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}
	if !b.IsOwnedBy(accountID) {
		s.logger.Warn("%s: account=%s is not the owner of business=%s", op, accountID, businessID)
		return nil, domain.ErrAccessDenied
	}
	return b, nil
}

// saveOfferings нормализует живые услуги и сохраняет их вместе с удалённой (если есть)
func (s *Service) saveOfferings(ctx context.Context, b *domain.Business, live []domain.Offering, deleted *domain.Offering) error {
	normalized, err := domain.NormalizeOfferings(live)
	if err != nil {
		return err
	}

	toSave := normalized
	if deleted != nil {
		toSave = append(append([]domain.Offering(nil), normalized...), *deleted)
	}
	if err := s.businessRepo.SaveOfferings(ctx, b.ID, toSave); err != nil {
		return fmt.Errorf("%w: failed to save offerings: %v", ErrInternal, err)
	}

	b.Offerings = normalized
	return nil
}

// resolve геокодирует координаты
func (s *Service) resolve(ctx context.Context, latitude, longitude float64) (*geocoding.Place, error) {
	place, err := s.geocoder.Resolve(ctx, latitude, longitude)
	if err != nil {
		if errors.Is(err, geocoding.ErrLocationNotFound) || errors.Is(err, geocoding.ErrTimeZoneNotFound) {
			s.logger.Warn("resolve: nothing found at %f,%f: %v", latitude, longitude, err)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("resolve: geocoding failed for %f,%f: %v", latitude, longitude, err)
		return nil, fmt.Errorf("%w: %v", ErrGeocoding, err)
	}
	return place, nil
}

func indexOf(offerings []domain.Offering, id uuid.UUID) int {
	for i := range offerings {
		if offerings[i].ID == id {
			return i
		}
	}
	return -1
}
