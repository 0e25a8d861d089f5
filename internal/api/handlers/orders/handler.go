package orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/orders/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidOrderID    = "некорректный ID заказа"
	msgInvalidFrom       = "некорректный параметр from, ожидается RFC3339"
	msgInvalidTo         = "некорректный параметр to, ожидается RFC3339"
	msgMissingAccountID  = "отсутствует ID аккаунта"
	msgForbidden         = "доступ запрещен"
	msgBusinessNotFound  = "бизнес не найден"
	msgOrderNotFound     = "заказ не найден"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/businesses/{businessId}/orders
// Query params: status, from, to (optional; from/to в RFC3339, start в [from, to))
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{id}/orders"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	req := &models.GetOrdersRequest{AccountID: accountID, BusinessID: businessID}

	query := r.URL.Query()
	if v := query.Get("status"); v != "" {
		req.Status = ptr.Ptr(v)
	}
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

	resp, err := h.service.GetOrders(r.Context(), req)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Orders retrieved: business_id=%s, count=%d", route, businessID, len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/businesses/{businessId}/orders/{orderId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{id}/orders/{id}"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	orderID, err := handlers.PathUUID(r, "orderId")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	resp, err := h.service.GetOrder(r.Context(), accountID, businessID, orderID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Order retrieved: order_id=%s", route, orderID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Lite GET /api/v1/orders/{orderId}
// Публичный вид заказа для страницы оплаты
func (h *Handler) Lite(w http.ResponseWriter, r *http.Request) {
	const route = "GET /orders/{id}"

	orderID, err := handlers.PathUUID(r, "orderId")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	resp, err := h.service.GetOrderLite(r.Context(), orderID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Order retrieved: order_id=%s", route, orderID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Customers GET /api/v1/businesses/{businessId}/customers
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{id}/customers"

	accountID, businessID, ok := h.owner(w, r, route)
	if !ok {
		return
	}

	resp, err := h.service.GetCustomers(r.Context(), accountID, businessID)
	if err != nil {
		h.fail(w, route, err)
		return
	}

	h.logger.Info("%s - Customers retrieved: business_id=%s, count=%d", route, businessID, len(resp))
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

	case errors.Is(err, domain.ErrUnknownOrder):
		h.logger.Warn("%s - Order not found: %v", route, err)
		handlers.RespondNotFound(w, msgOrderNotFound)

	case errors.Is(err, domain.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondDomainError(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
