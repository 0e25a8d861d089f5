package businesses

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/business"
	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingAccountID       = "отсутствует ID аккаунта"
	msgForbidden              = "доступ запрещен"
	msgBusinessNotFound       = "бизнес не найден"
	msgSignTaken              = "адрес страницы уже занят"
	msgLocationNotFound       = "не удалось определить адрес по координатам"
	msgGeocodingUnavailable   = "сервис геокодирования недоступен, попробуйте позже"
	msgConcurrentModification = "бизнес был изменён, обновите данные"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/businesses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /businesses"

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing account ID", route)
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.CreateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID

	resp, err := h.service.CreateBusiness(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Business created: business_id=%s, sign=%s, account_id=%s", route, resp.ID, resp.Sign, accountID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PATCH /api/v1/businesses/{businessId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /businesses/{id}"

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

	var req models.UpdateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID
	req.BusinessID = businessID

	resp, err := h.service.UpdateBusiness(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Business updated: business_id=%s, version=%d", route, businessID, resp.Version)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GetBySign GET /api/v1/businesses/by-sign/{sign}
// Публичная страница бизнеса
func (h *Handler) GetBySign(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/by-sign/{sign}"

	sign := mux.Vars(r)["sign"]
	resp, err := h.service.GetBySign(r.Context(), sign)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Business retrieved: sign=%s", route, sign)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// ListMine GET /api/v1/businesses
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses"

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing account ID", route)
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	resp, err := h.service.ListMine(r.Context(), accountID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Businesses retrieved: account_id=%s, count=%d", route, accountID, len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// SetSchedule PUT /api/v1/businesses/{businessId}/schedule
func (h *Handler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /businesses/{id}/schedule"

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

	var req models.SetScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID
	req.BusinessID = businessID

	resp, err := h.service.SetSchedule(r.Context(), &req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Schedule replaced: business_id=%s, days=%d", route, businessID, len(resp.Schedule))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		h.logger.Warn("%s - Business not found: %v", route, err)
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, domain.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrSignTaken):
		h.logger.Warn("%s - Sign taken: %v", route, err)
		handlers.RespondConflict(w, msgSignTaken)

	case errors.Is(err, domain.ErrConcurrentModification):
		h.logger.Warn("%s - Concurrent modification: %v", route, err)
		handlers.RespondConflict(w, msgConcurrentModification)

	case errors.Is(err, business.ErrLocationNotFound):
		h.logger.Warn("%s - Location not found: %v", route, err)
		handlers.RespondBadRequest(w, msgLocationNotFound)

	case errors.Is(err, business.ErrGeocoding):
		h.logger.Error("%s - Geocoding failed: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, msgGeocodingUnavailable)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondDomainError(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
