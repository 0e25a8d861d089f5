package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	withdrawalRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/withdrawal"
	"github.com/m04kA/SMC-ReservationService/internal/service/wallet/models"
)

// Service сервис кошелька: баланс для владельца и обработка выплат оператором
type Service struct {
	businessRepo   BusinessRepository
	orderRepo      OrderRepository
	withdrawalRepo WithdrawalRepository
	txManager      TransactionManager
	hold           time.Duration
	now            func() time.Time
	logger         Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	businessRepo BusinessRepository,
	orderRepo OrderRepository,
	withdrawalRepo WithdrawalRepository,
	txManager TransactionManager,
	hold time.Duration,
	logger Logger,
) *Service {
	return &Service{
		businessRepo:   businessRepo,
		orderRepo:      orderRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		hold:           hold,
		now:            time.Now,
		logger:         logger,
	}
}

// GetWallet считает кошелёк бизнеса по журналу платежей и выплат
func (s *Service) GetWallet(ctx context.Context, accountID, businessID uuid.UUID) (*models.WalletResponse, error) {
	s.logger.Info("GetWallet: account=%s, business=%s", accountID, businessID)

	b, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		s.logger.Error("GetWallet: failed to get business id=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetWallet - business repository error: %v", ErrInternal, err)
	}
	if !b.IsOwnedBy(accountID) {
		s.logger.Warn("GetWallet: account=%s is not the owner of business=%s", accountID, businessID)
		return nil, domain.ErrAccessDenied
	}

	payments, err := s.orderRepo.CompletedPayments(ctx, b.ID)
	if err != nil {
		s.logger.Error("GetWallet: failed to list payments: %v", err)
		return nil, fmt.Errorf("%w: GetWallet - order repository error: %v", ErrInternal, err)
	}
	withdrawals, err := s.withdrawalRepo.ListByBusiness(ctx, b.ID)
	if err != nil {
		s.logger.Error("GetWallet: failed to list withdrawals: %v", err)
		return nil, fmt.Errorf("%w: GetWallet - withdrawal repository error: %v", ErrInternal, err)
	}
	completed, err := s.orderRepo.CountCompleted(ctx, b.ID)
	if err != nil {
		s.logger.Error("GetWallet: failed to count completed orders: %v", err)
		return nil, fmt.Errorf("%w: GetWallet - order repository error: %v", ErrInternal, err)
	}

	w := domain.ComputeWallet(payments, withdrawals, s.now(), s.hold)
	s.logger.Info("GetWallet: business=%s balance=%d available=%d", b.ID, w.Balance, w.Available)
	return models.FromDomainWallet(b, w, completed), nil
}

// CompleteWithdraw оператор подтверждает выплату
func (s *Service) CompleteWithdraw(ctx context.Context, withdrawalID uuid.UUID) (*models.WithdrawalResponse, error) {
	return s.resolve(ctx, "CompleteWithdraw", withdrawalID, (*domain.Withdrawal).Complete)
}

// FailWithdraw оператор отклоняет выплату, сумма снова становится доступной
func (s *Service) FailWithdraw(ctx context.Context, withdrawalID uuid.UUID) (*models.WithdrawalResponse, error) {
	return s.resolve(ctx, "FailWithdraw", withdrawalID, (*domain.Withdrawal).Fail)
}

func (s *Service) resolve(
	ctx context.Context,
	op string,
	withdrawalID uuid.UUID,
	apply func(w *domain.Withdrawal, now time.Time) error,
) (*models.WithdrawalResponse, error) {
	s.logger.Info("%s: withdrawal=%s", op, withdrawalID)

	var result *domain.Withdrawal
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		w, err := s.withdrawalRepo.GetByID(txCtx, withdrawalID)
		if err != nil {
			if errors.Is(err, withdrawalRepo.ErrWithdrawalNotFound) {
				return domain.ErrWithdrawalNotFound
			}
			return fmt.Errorf("%w: %s - failed to get withdrawal: %v", ErrInternal, op, err)
		}

		if err := apply(w, s.now()); err != nil {
			return err
		}

		if err := s.withdrawalRepo.Update(txCtx, w); err != nil {
			if errors.Is(err, withdrawalRepo.ErrVersionConflict) {
				return domain.ErrConcurrentModification
			}
			return fmt.Errorf("%w: %s - failed to update withdrawal: %v", ErrInternal, op, err)
		}

		result = w
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: withdrawal=%s: %v", op, withdrawalID, err)
		} else {
			s.logger.Warn("%s: withdrawal=%s rejected: %v", op, withdrawalID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: withdrawal id=%s is now %s", op, result.ID, result.Status)
	return models.FromDomainWithdrawal(result), nil
}
