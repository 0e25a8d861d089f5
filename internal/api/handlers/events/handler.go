package events

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

type Handler struct {
	hub          RoomServer
	operatorRoom string
	logger       Logger
}

func NewHandler(hub RoomServer, operatorRoom string, logger Logger) *Handler {
	return &Handler{
		hub:          hub,
		operatorRoom: operatorRoom,
		logger:       logger,
	}
}

// Owner GET /api/v1/events
// Уведомления владельца по всем его бизнесам, комната = id аккаунта
func (h *Handler) Owner(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /events - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}
	h.serve(w, r, "GET /events", accountID.String())
}

// Operator GET /api/v1/operator/events
func (h *Handler) Operator(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "GET /operator/events", h.operatorRoom)
}

// upgrader сам отвечает клиенту при ошибке рукопожатия, поэтому тут только лог
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, route, room string) {
	if err := h.hub.Serve(w, r, room); err != nil {
		h.logger.Warn("%s - Websocket upgrade failed: room=%s, error=%v", route, room, err)
		return
	}
	h.logger.Info("%s - Websocket closed: room=%s", route, room)
}
