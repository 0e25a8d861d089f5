package blocked

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidBlockedID   = "некорректный ID интервала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFrom        = "некорректный параметр from, ожидается RFC3339"
	msgInvalidTo          = "некорректный параметр to, ожидается RFC3339"
	msgMissingAccountID   = "отсутствует ID аккаунта"
	msgForbidden          = "доступ запрещен"
	msgBusinessNotFound   = "бизнес не найден"
	msgBlockedNotFound    = "интервал не найден"
)

type Handler struct {
	service BlockedService
	logger  Logger
}

func NewHandler(service BlockedService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/businesses/{businessId}/blocked
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /businesses/{id}/blocked"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	var req models.AddBlockedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID
	req.BusinessID = businessID

	resp, err := h.service.AddBlocked(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Blocked period created: business_id=%s, blocked_id=%s", route, businessID, resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// List GET /api/v1/businesses/{businessId}/blocked
// Query params: from, to (optional, RFC3339)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{id}/blocked"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	req := &models.ListBlockedRequest{AccountID: accountID, BusinessID: businessID}

	query := r.URL.Query()
	if v := query.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.logger.Warn("%s - Invalid from: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.logger.Warn("%s - Invalid to: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.To = &to
	}

	resp, err := h.service.ListBlocked(r.Context(), req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Blocked periods retrieved: business_id=%s, count=%d", route, businessID, len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/businesses/{businessId}/blocked/{blockedId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /businesses/{id}/blocked/{id}"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	blockedID, err := handlers.PathUUID(r, "blockedId")
	if err != nil {
		h.logger.Warn("%s - Invalid blocked ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBlockedID)
		return
	}

	err = h.service.DeleteBlocked(r.Context(), &models.DeleteBlockedRequest{
		AccountID:  accountID,
		BusinessID: businessID,
		BlockedID:  blockedID,
	})
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Blocked period deleted: business_id=%s, blocked_id=%s", route, businessID, blockedID)
	handlers.RespondNoContent(w)
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, uuid.UUID, bool) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("%s - Invalid business ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return uuid.Nil, uuid.Nil, false
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing account ID", route)
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return uuid.Nil, uuid.Nil, false
	}
	return accountID, businessID, true
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		h.logger.Warn("%s - Business not found: %v", route, err)
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, domain.ErrBlockedNotFound):
		h.logger.Warn("%s - Blocked period not found: %v", route, err)
		handlers.RespondNotFound(w, msgBlockedNotFound)

	case errors.Is(err, domain.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case handlers.StatusFor(err) != http.StatusInternalServerError:
		h.logger.Warn("%s - Request rejected: %v", route, err)
		handlers.RespondDomainError(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
