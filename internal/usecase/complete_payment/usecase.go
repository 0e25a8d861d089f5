package complete_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
)

// UseCase use case сверки платежа по событию шлюза
type UseCase struct {
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	feeRate      decimal.Decimal
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
	feeRate decimal.Decimal,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		feeRate:      feeRate,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проводит платёж ровно один раз
// Повторная доставка того же события возвращает ErrDuplicateDelivery и ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompletePayment: order=%s, intent=%s, received=%d, tip=%d",
		req.OrderID, req.IntentID, req.AmountReceived, req.Tip)

	// 1. Валидация входных данных
	if req.OrderID == uuid.Nil || req.IntentID == "" {
		return nil, fmt.Errorf("%w: orderID and intentID are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var order *domain.Order

	// 2. Сверяем платёж под блокировкой заказа
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("CompletePayment: order id=%s not found", req.OrderID)
				return domain.ErrUnknownOrder
			}
			uc.logger.Error("CompletePayment: failed to get order id=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		if o.Payment == nil || o.Payment.IntentID != req.IntentID {
			uc.logger.Warn("CompletePayment: order id=%s has no intent %s", o.ID, req.IntentID)
			return domain.ErrUnknownOrder
		}
		if o.Payment.IsCompleted() {
			uc.logger.Info("CompletePayment: intent %s already reconciled, skipping", req.IntentID)
			return ErrDuplicateDelivery
		}

		if err := o.CompletePayment(req.AmountReceived, req.Tip, uc.feeRate, now); err != nil {
			uc.logger.Warn("CompletePayment: order id=%s rejected: %v", o.ID, err)
			return err
		}

		if err := uc.orderRepo.CompletePayment(txCtx, o); err != nil {
			if errors.Is(err, orderRepo.ErrVersionConflict) {
				return domain.ErrConcurrentModification
			}
			uc.logger.Error("CompletePayment: failed to store payment for order id=%s: %v", o.ID, err)
			return fmt.Errorf("%w: failed to complete payment: %v", ErrInternal, err)
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := order.Payment
	uc.logger.Info("CompletePayment: order id=%s base=%d tip=%d fee=%d total=%d", order.ID, p.Base, p.Tip, p.Fee, p.Total)
	uc.metrics.PaymentReconciled()

	// 3. Уведомляем владельца бизнеса
	uc.notifyOwner(ctx, order)

	return &Response{
		OrderID:     order.ID,
		Base:        p.Base,
		Tip:         p.Tip,
		Fee:         p.Fee,
		Total:       p.Total,
		CompletedAt: *p.CompletedAt,
	}, nil
}

func (uc *UseCase) notifyOwner(ctx context.Context, o *domain.Order) {
	b, err := uc.businessRepo.GetByID(ctx, o.BusinessID)
	if err != nil {
		uc.logger.Error("CompletePayment: notification skipped, failed to get business id=%s: %v", o.BusinessID, err)
		return
	}
	c, err := uc.customerRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		uc.logger.Error("CompletePayment: notification skipped, failed to get customer id=%s: %v", o.CustomerID, err)
		return
	}
	uc.notifier.NotifyBusinessOwner(b.OwnerAccountID, notify.KindPaymentReceived, notify.PaymentReceived(o, c))
}
