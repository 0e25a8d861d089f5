package update_order_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
)

// UseCase use case для смены статуса заказа владельцем бизнеса
type UseCase struct {
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOrderStatus: account=%s, business=%s, order=%s, status=%s",
		req.AccountID, req.BusinessID, req.OrderID, req.Status)

	// 1. Валидация входных данных
	if req.OrderID == uuid.Nil || req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: businessID and orderID are required", ErrInvalidInput)
	}
	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateOrderStatus: invalid status %q", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		order    *domain.Order
		business *domain.Business
	)

	// 3. Читаем заказ с блокировкой и применяем переход
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("UpdateOrderStatus: order id=%s not found", req.OrderID)
				return domain.ErrUnknownOrder
			}
			uc.logger.Error("UpdateOrderStatus: failed to get order id=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}
		if o.BusinessID != req.BusinessID {
			uc.logger.Warn("UpdateOrderStatus: order id=%s belongs to another business", req.OrderID)
			return domain.ErrUnknownOrder
		}

		b, err := uc.businessRepo.GetByID(txCtx, o.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return domain.ErrBusinessNotFound
			}
			uc.logger.Error("UpdateOrderStatus: failed to get business id=%s: %v", o.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
		if !b.IsOwnedBy(req.AccountID) {
			uc.logger.Warn("UpdateOrderStatus: account=%s is not the owner of business=%s", req.AccountID, b.ID)
			return domain.ErrAccessDenied
		}

		if err := o.Transition(target, now); err != nil {
			uc.logger.Warn("UpdateOrderStatus: transition %s -> %s rejected: %v", o.Status, target, err)
			return err
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			if errors.Is(err, orderRepo.ErrVersionConflict) {
				uc.logger.Warn("UpdateOrderStatus: order id=%s modified concurrently", o.ID)
				return domain.ErrConcurrentModification
			}
			uc.logger.Error("UpdateOrderStatus: failed to update order id=%s: %v", o.ID, err)
			return fmt.Errorf("%w: failed to update order: %v", ErrInternal, err)
		}

		order, business = o, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateOrderStatus: order id=%s is now %s", order.ID, order.Status)
	uc.metrics.OrderTransition(string(order.Status))

	// 4. Уведомляем клиента после фиксации (завершение заказа без уведомления)
	if order.Status == domain.OrderStatusApproved || order.Status == domain.OrderStatusDeclined {
		uc.notifyCustomer(ctx, business, order)
	}

	return &Response{
		ID:        order.ID,
		Status:    string(order.Status),
		Start:     order.Range.Start,
		End:       order.Range.End,
		Version:   order.Version,
		UpdatedAt: order.UpdatedAt,
	}, nil
}

// notifyCustomer ошибка чтения клиента не влияет на результат перехода
func (uc *UseCase) notifyCustomer(ctx context.Context, b *domain.Business, o *domain.Order) {
	customer, err := uc.customerRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		uc.logger.Error("UpdateOrderStatus: notification skipped, failed to get customer id=%s: %v", o.CustomerID, err)
		return
	}
	uc.notifier.NotifyCustomer(customer.Email, notify.KindOrderStatusChanged, notify.OrderStatusChanged(b, o))
}
