package withdraw

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	withdrawUC "github.com/m04kA/SMC-ReservationService/internal/usecase/withdraw"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgBusinessNotFound       = "бизнес не найден"
	msgNothingToWithdraw      = "нет доступных средств для вывода"
	msgConcurrentModification = "выплата уже оформляется, попробуйте позже"
)

type Handler struct {
	useCase WithdrawUseCase
	logger  Logger
}

func NewHandler(useCase WithdrawUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/withdrawals
// Выводится весь доступный баланс
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/withdrawals - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/withdrawals - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &withdrawUC.Request{AccountID: accountID, BusinessID: businessID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/withdrawals - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/withdrawals - Access denied: business_id=%s, account_id=%s",
				businessID, accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidAmount):
			h.logger.Warn("POST /businesses/{id}/withdrawals - Nothing to withdraw: business_id=%s", businessID)
			handlers.RespondBadRequest(w, msgNothingToWithdraw)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("POST /businesses/{id}/withdrawals - Concurrent withdrawal: business_id=%s", businessID)
			handlers.RespondConflict(w, msgConcurrentModification)

		default:
			h.logger.Error("POST /businesses/{id}/withdrawals - Failed to withdraw: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/withdrawals - Withdrawal requested: withdrawal_id=%s, business_id=%s, amount=%d",
		result.ID, businessID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
