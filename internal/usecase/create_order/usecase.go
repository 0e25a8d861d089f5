package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerr"
)

// UseCase use case для создания заказа
type UseCase struct {
	businessRepo BusinessRepository
	orderRepo    OrderRepository
	customerRepo CustomerRepository
	availability AvailabilityService
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	orderRepo OrderRepository,
	customerRepo CustomerRepository,
	availability AvailabilityService,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		availability: availability,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заказа
// Проверка слота и вставка выполняются в одной сериализуемой транзакции под блокировкой строки бизнеса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: business=%s, offering=%s, start=%s, email=%s",
		req.BusinessID, req.OfferingID, req.Start.Format(timeLayout), req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	customer, err := domain.NormalizeCustomer(domain.Customer{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		uc.logger.Warn("CreateOrder: invalid customer: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		order    *domain.Order
		business *domain.Business
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бизнес с блокировкой строки (FOR UPDATE)
		b, err := uc.businessRepo.GetByID(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				uc.logger.Warn("CreateOrder: business id=%s not found", req.BusinessID)
				return domain.ErrBusinessNotFound
			}
			uc.logger.Error("CreateOrder: failed to get business id=%s: %v", req.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
		if !b.IsActive {
			uc.logger.Warn("CreateOrder: business id=%s is inactive", req.BusinessID)
			return domain.ErrBusinessNotFound
		}
		business = b

		// 3.2. Ищем услугу
		offering, ok := findOffering(b, req.OfferingID)
		if !ok {
			uc.logger.Warn("CreateOrder: offering id=%s not found in business id=%s", req.OfferingID, req.BusinessID)
			return domain.ErrOfferingNotFound
		}

		// 3.3. Пересчитываем свободные слоты на локальный день начала
		day := availability.Day(b, req.Start.In(b.Loc()))
		slots, err := uc.availability.FreeSlots(txCtx, b, offering.Duration, day, now)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}

		// 3.4. Начало должно точно совпадать со свободным слотом
		slot, ok := domain.FindSlot(slots, req.Start)
		if !ok {
			uc.logger.Warn("CreateOrder: slot %s is not available (%d free)", req.Start.Format(timeLayout), len(slots))
			return domain.ErrSlotUnavailable
		}

		// 3.5. Создаём или обновляем клиента
		if err := uc.customerRepo.Upsert(txCtx, &customer); err != nil {
			uc.logger.Error("CreateOrder: failed to upsert customer: %v", err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 3.6. Создаём заказ со снимком услуги
		o := &domain.Order{
			ID:          uuid.New(),
			BusinessID:  b.ID,
			OfferingID:  offering.ID,
			CustomerID:  customer.ID,
			Price:       offering.Price,
			Title:       offering.Title,
			Description: offering.Description,
			Image:       offering.Image,
			Currency:    b.Currency,
			Range:       slot,
			Status:      domain.OrderStatusPending,
			Note:        req.Note,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			switch {
			case errors.Is(err, orderRepo.ErrSlotTaken):
				uc.logger.Warn("CreateOrder: slot %s taken concurrently", req.Start.Format(timeLayout))
				return domain.ErrSlotUnavailable
			case errors.Is(err, orderRepo.ErrSerialization):
				uc.logger.Warn("CreateOrder: serialization failure on insert: %v", err)
				return domain.ErrConcurrentModification
			}
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		order = o
		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			uc.logger.Warn("CreateOrder: serialization failure on commit: %v", err)
			return nil, domain.ErrConcurrentModification
		}
		return nil, err
	}

	uc.logger.Info("CreateOrder: successfully created order id=%s", order.ID)

	// 4. Уведомления после фиксации транзакции
	uc.metrics.OrderCreated()
	uc.notifier.NotifyBusinessOwner(business.OwnerAccountID, notify.KindOrderReceived, notify.OrderReceived(order, &customer))
	uc.notifier.NotifyCustomer(customer.Email, notify.KindOrderStatusChanged, notify.OrderStatusChanged(business, order))

	return &Response{
		ID:          order.ID,
		BusinessID:  order.BusinessID,
		OfferingID:  order.OfferingID,
		CustomerID:  order.CustomerID,
		Title:       order.Title,
		Description: order.Description,
		Image:       order.Image,
		Price:       order.Price,
		Currency:    order.Currency,
		Start:       order.Range.Start,
		End:         order.Range.End,
		Status:      string(order.Status),
		Note:        order.Note,
		CreatedAt:   order.CreatedAt,
	}, nil
}

const timeLayout = "2006-01-02T15:04Z07:00"

func findOffering(b *domain.Business, id uuid.UUID) (*domain.Offering, bool) {
	for i := range b.Offerings {
		if b.Offerings[i].ID == id && !b.Offerings[i].IsDeleted() {
			return &b.Offerings[i], true
		}
	}
	return nil, false
}
