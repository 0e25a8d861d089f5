package wallet

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/wallet/models"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidWithdrawalID    = "некорректный ID выплаты"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgBusinessNotFound       = "бизнес не найден"
	msgWithdrawalNotFound     = "выплата не найдена"
	msgAlreadyCompleted       = "выплата уже обработана"
	msgConcurrentModification = "выплата была изменена, обновите данные"
)

type Handler struct {
	service WalletService
	logger  Logger
}

func NewHandler(service WalletService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/businesses/{businessId}/wallet
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{id}/wallet"

	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("%s - Invalid business ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing account ID", route)
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	resp, err := h.service.GetWallet(r.Context(), accountID, businessID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Wallet retrieved: business_id=%s, available=%d", route, businessID, resp.Available)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Complete POST /api/v1/operator/withdrawals/{withdrawalId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "POST /operator/withdrawals/{id}/complete", h.service.CompleteWithdraw)
}

// Fail POST /api/v1/operator/withdrawals/{withdrawalId}/fail
func (h *Handler) Fail(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "POST /operator/withdrawals/{id}/fail", h.service.FailWithdraw)
}

func (h *Handler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, id uuid.UUID) (*models.WithdrawalResponse, error),
) {
	withdrawalID, err := handlers.PathUUID(r, "withdrawalId")
	if err != nil {
		h.logger.Warn("%s - Invalid withdrawal ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidWithdrawalID)
		return
	}

	operatorID, _ := middleware.GetAccountID(r.Context())

	resp, err := apply(r.Context(), withdrawalID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Withdrawal resolved: withdrawal_id=%s, status=%s, operator_id=%s",
		route, withdrawalID, resp.Status, operatorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		h.logger.Warn("%s - Business not found: %v", route, err)
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, domain.ErrWithdrawalNotFound):
		h.logger.Warn("%s - Withdrawal not found: %v", route, err)
		handlers.RespondNotFound(w, msgWithdrawalNotFound)

	case errors.Is(err, domain.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrAlreadyCompleted):
		h.logger.Warn("%s - Withdrawal already resolved: %v", route, err)
		handlers.RespondConflict(w, msgAlreadyCompleted)

	case errors.Is(err, domain.ErrConcurrentModification):
		h.logger.Warn("%s - Concurrent modification: %v", route, err)
		handlers.RespondConflict(w, msgConcurrentModification)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
