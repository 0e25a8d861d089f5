package start_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
)

// UseCase use case выпуска намерения оплаты для заказа
type UseCase struct {
	orderRepo OrderRepository
	gateway   PaymentGateway
	txManager TransactionManager
	now       func() time.Time
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, gateway PaymentGateway, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		gateway:   gateway,
		txManager: txManager,
		now:       time.Now,
		logger:    logger,
	}
}

// Execute создаёт намерение оплаты или обновляет сумму существующего
// Шлюз вызывается под блокировкой строки заказа, поэтому два параллельных запроса не создадут два намерения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartPayment: order=%s, tip=%d", req.OrderID, req.Tip)

	// 1. Валидация входных данных
	if req.OrderID == uuid.Nil {
		return nil, fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}
	if req.Tip < 0 {
		return nil, domain.ErrInvalidAmount
	}

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Читаем заказ с блокировкой
		o, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return domain.ErrUnknownOrder
			}
			uc.logger.Error("StartPayment: failed to get order id=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 3. Проверяем предусловия
		if err := o.CanStartPayment(); err != nil {
			uc.logger.Warn("StartPayment: order id=%s rejected: %v", o.ID, err)
			return err
		}
		amount := o.Price + req.Tip
		if amount <= 0 {
			return domain.ErrInvalidAmount
		}

		md := stripegateway.Metadata{OrderID: o.ID, Tip: req.Tip}

		// 4. Повторный вызов только меняет сумму существующего намерения
		if o.Payment != nil {
			intent, err := uc.gateway.UpdateIntent(txCtx, o.Payment.IntentID, amount, md)
			if err != nil {
				uc.logger.Error("StartPayment: failed to update intent %s: %v", o.Payment.IntentID, err)
				return fmt.Errorf("%w: %v", ErrGateway, err)
			}
			resp = toResponse(o, intent, amount)
			return nil
		}

		intent, err := uc.gateway.CreateIntent(txCtx, amount, o.Currency, md)
		if err != nil {
			uc.logger.Error("StartPayment: failed to create intent for order id=%s: %v", o.ID, err)
			return fmt.Errorf("%w: %v", ErrGateway, err)
		}

		now := uc.now()
		o.Payment = &domain.Payment{IntentID: intent.ID, CreatedAt: now}
		o.UpdatedAt = now
		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			if errors.Is(err, orderRepo.ErrVersionConflict) {
				return domain.ErrConcurrentModification
			}
			uc.logger.Error("StartPayment: failed to store intent %s for order id=%s: %v", intent.ID, o.ID, err)
			return fmt.Errorf("%w: failed to update order: %v", ErrInternal, err)
		}

		resp = toResponse(o, intent, amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("StartPayment: order id=%s intent=%s amount=%d", resp.OrderID, resp.IntentID, resp.Amount)
	return resp, nil
}

func toResponse(o *domain.Order, intent *stripegateway.Intent, amount int64) *Response {
	return &Response{
		OrderID:      o.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     o.Currency,
	}
}
