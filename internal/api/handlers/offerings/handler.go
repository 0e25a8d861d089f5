package offerings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidOfferingID      = "некорректный ID услуги"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgBusinessNotFound       = "бизнес не найден"
	msgOfferingNotFound       = "услуга не найдена"
	msgConcurrentModification = "бизнес был изменён, обновите данные"
)

type Handler struct {
	service OfferingService
	logger  Logger
}

func NewHandler(service OfferingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Add POST /api/v1/businesses/{businessId}/offerings
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const route = "POST /businesses/{id}/offerings"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	var req models.AddOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID
	req.BusinessID = businessID

	resp, err := h.service.AddOffering(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Offering added: business_id=%s, offerings=%d", route, businessID, len(resp.Offerings))
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PATCH /api/v1/businesses/{businessId}/offerings/{offeringId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /businesses/{id}/offerings/{id}"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	offeringID, err := handlers.PathUUID(r, "offeringId")
	if err != nil {
		h.logger.Warn("%s - Invalid offering ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}

	var req models.UpdateOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID
	req.BusinessID = businessID
	req.OfferingID = offeringID

	resp, err := h.service.UpdateOffering(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Offering updated: business_id=%s, offering_id=%s", route, businessID, offeringID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/businesses/{businessId}/offerings/{offeringId}
// Услуга помечается удалённой, заказы сохраняют её снимок
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /businesses/{id}/offerings/{id}"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	offeringID, err := handlers.PathUUID(r, "offeringId")
	if err != nil {
		h.logger.Warn("%s - Invalid offering ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}

	resp, err := h.service.DeleteOffering(r.Context(), &models.DeleteOfferingRequest{
		AccountID:  accountID,
		BusinessID: businessID,
		OfferingID: offeringID,
	})
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Offering deleted: business_id=%s, offering_id=%s", route, businessID, offeringID)
	handlers.RespondJSON(w, http.StatusOK, resp)
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

	case errors.Is(err, domain.ErrOfferingNotFound):
		h.logger.Warn("%s - Offering not found: %v", route, err)
		handlers.RespondNotFound(w, msgOfferingNotFound)

	case errors.Is(err, domain.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrConcurrentModification):
		h.logger.Warn("%s - Concurrent modification: %v", route, err)
		handlers.RespondConflict(w, msgConcurrentModification)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondDomainError(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
