package withdraw

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerr"
)

// UseCase use case вывода доступного баланса
type UseCase struct {
	businessRepo   BusinessRepository
	orderRepo      OrderRepository
	withdrawalRepo WithdrawalRepository
	notifier       Notifier
	metrics        Metrics
	txManager      TransactionManager
	hold           time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	orderRepo OrderRepository,
	withdrawalRepo WithdrawalRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	hold time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:   businessRepo,
		orderRepo:      orderRepo,
		withdrawalRepo: withdrawalRepo,
		notifier:       notifier,
		metrics:        metrics,
		txManager:      txManager,
		hold:           hold,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute создаёт выплату на всю доступную сумму
// Строка бизнеса блокируется, поэтому параллельные выплаты видят друг друга
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Withdraw: account=%s, business=%s", req.AccountID, req.BusinessID)

	if req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var (
		business   *domain.Business
		withdrawal *domain.Withdrawal
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бизнес и проверяем владельца
		b, err := uc.businessRepo.GetByID(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return domain.ErrBusinessNotFound
			}
			uc.logger.Error("Withdraw: failed to get business id=%s: %v", req.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
		if !b.IsOwnedBy(req.AccountID) {
			uc.logger.Warn("Withdraw: account=%s is not the owner of business=%s", req.AccountID, b.ID)
			return domain.ErrAccessDenied
		}

		// 2. Считаем кошелёк по журналу
		payments, err := uc.orderRepo.CompletedPayments(txCtx, b.ID)
		if err != nil {
			uc.logger.Error("Withdraw: failed to list payments for business id=%s: %v", b.ID, err)
			return fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
		}
		withdrawals, err := uc.withdrawalRepo.ListByBusiness(txCtx, b.ID)
		if err != nil {
			uc.logger.Error("Withdraw: failed to list withdrawals for business id=%s: %v", b.ID, err)
			return fmt.Errorf("%w: failed to list withdrawals: %v", ErrInternal, err)
		}

		wallet := domain.ComputeWallet(payments, withdrawals, now, uc.hold)
		if wallet.Available <= 0 {
			uc.logger.Warn("Withdraw: business id=%s has nothing available (balance=%d, hold=%d)",
				b.ID, wallet.Balance, wallet.HoldBalance)
			return domain.ErrInvalidAmount
		}

		// 3. Создаём выплату
		w := &domain.Withdrawal{
			ID:         uuid.New(),
			BusinessID: b.ID,
			Amount:     wallet.Available,
			Status:     domain.WithdrawalStatusPending,
		}
		if err := uc.withdrawalRepo.Create(txCtx, w); err != nil {
			uc.logger.Error("Withdraw: failed to create withdrawal: %v", err)
			return fmt.Errorf("%w: failed to create withdrawal: %v", ErrInternal, err)
		}

		business, withdrawal = b, w
		return nil
	})
	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			uc.logger.Warn("Withdraw: serialization failure on commit: %v", err)
			return nil, domain.ErrConcurrentModification
		}
		return nil, err
	}

	uc.logger.Info("Withdraw: created withdrawal id=%s amount=%d", withdrawal.ID, withdrawal.Amount)
	uc.metrics.WithdrawalRequested()
	uc.notifier.NotifyOperator(notify.KindWithdrawalRequested, notify.WithdrawalRequested(business, withdrawal))

	return &Response{
		ID:         withdrawal.ID,
		BusinessID: withdrawal.BusinessID,
		Amount:     withdrawal.Amount,
		Status:     string(withdrawal.Status),
		CreatedAt:  withdrawal.CreatedAt,
	}, nil
}
