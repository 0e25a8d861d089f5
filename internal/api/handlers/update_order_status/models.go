package update_order_status

import (
	"time"

	"github.com/google/uuid"

	updateOrderStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/update_order_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // approved, declined или completed
}

// OrderStatusResponse HTTP response model
type OrderStatusResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromUseCaseResponse(resp *updateOrderStatus.Response) *OrderStatusResponse {
	return &OrderStatusResponse{
		ID:        resp.ID,
		Status:    resp.Status,
		Start:     resp.Start,
		End:       resp.End,
		Version:   resp.Version,
		UpdatedAt: resp.UpdatedAt,
	}
}
