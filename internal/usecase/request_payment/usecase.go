package request_payment

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

// UseCase use case запроса оплаты у клиента
type UseCase struct {
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	notifier     Notifier
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выставляет цену и помечает заказ как ожидающий оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestPayment: account=%s, order=%s, price=%d", req.AccountID, req.OrderID, req.Price)

	// 1. Валидация входных данных
	if req.OrderID == uuid.Nil || req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: businessID and orderID are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		order    *domain.Order
		business *domain.Business
	)

	// 2. Меняем заказ под блокировкой строки
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return domain.ErrUnknownOrder
			}
			uc.logger.Error("RequestPayment: failed to get order id=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}
		if o.BusinessID != req.BusinessID {
			return domain.ErrUnknownOrder
		}

		b, err := uc.businessRepo.GetByID(txCtx, o.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return domain.ErrBusinessNotFound
			}
			uc.logger.Error("RequestPayment: failed to get business id=%s: %v", o.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
		if !b.IsOwnedBy(req.AccountID) {
			uc.logger.Warn("RequestPayment: account=%s is not the owner of business=%s", req.AccountID, b.ID)
			return domain.ErrAccessDenied
		}

		if err := o.RequestPayment(req.Price, now); err != nil {
			uc.logger.Warn("RequestPayment: order id=%s rejected: %v", o.ID, err)
			return err
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			if errors.Is(err, orderRepo.ErrVersionConflict) {
				return domain.ErrConcurrentModification
			}
			uc.logger.Error("RequestPayment: failed to update order id=%s: %v", o.ID, err)
			return fmt.Errorf("%w: failed to update order: %v", ErrInternal, err)
		}

		order, business = o, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestPayment: order id=%s awaits payment of %d %s", order.ID, order.Price, order.Currency)

	// 3. Уведомляем клиента
	customer, err := uc.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		uc.logger.Error("RequestPayment: notification skipped, failed to get customer id=%s: %v", order.CustomerID, err)
	} else {
		uc.notifier.NotifyCustomer(customer.Email, notify.KindPaymentRequested, notify.PaymentRequested(business, order))
	}

	return &Response{
		ID:               order.ID,
		Status:           string(order.Status),
		Price:            order.Price,
		Currency:         order.Currency,
		PaymentRequested: order.PaymentRequested,
		Version:          order.Version,
		UpdatedAt:        order.UpdatedAt,
	}, nil
}
