package create_order

import (
	"time"

	"github.com/google/uuid"

	createOrder "github.com/m04kA/SMC-ReservationService/internal/usecase/create_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	OfferingID uuid.UUID `json:"offeringId"`
	Start      time.Time `json:"start"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	Note       *string   `json:"note,omitempty"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"businessId"`
	OfferingID  uuid.UUID `json:"offeringId"`
	CustomerID  uuid.UUID `json:"customerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateOrderRequest) ToUseCaseRequest(businessID uuid.UUID) *createOrder.Request {
	return &createOrder.Request{
		BusinessID: businessID,
		OfferingID: r.OfferingID,
		Start:      r.Start,
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Note:       r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
	return &OrderResponse{
		ID:          resp.ID,
		BusinessID:  resp.BusinessID,
		OfferingID:  resp.OfferingID,
		CustomerID:  resp.CustomerID,
		Title:       resp.Title,
		Description: resp.Description,
		Image:       resp.Image,
		Price:       resp.Price,
		Currency:    resp.Currency,
		Start:       resp.Start,
		End:         resp.End,
		Status:      resp.Status,
		Note:        resp.Note,
		CreatedAt:   resp.CreatedAt,
	}
}
