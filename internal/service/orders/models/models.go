package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// GetOrdersRequest запрос списка заказов бизнеса
type GetOrdersRequest struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
	Status     *string    // Фильтр по статусу (опционально)
	From       *time.Time // start >= From
	To         *time.Time // start < To
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOrdersRequest) ToDomainFilter() (domain.OrderFilter, error) {
	filter := domain.OrderFilter{
		BusinessID: r.BusinessID,
		From:       r.From,
		To:         r.To,
	}
	if r.Status != nil {
		status, err := domain.ParseOrderStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, domain.ErrInvalidRange
	}
	return filter, nil
}

// Response модели

// PaymentResponse разбивка платежа заказа
type PaymentResponse struct {
	IntentID    string     `json:"intentId"`
	Base        int64      `json:"base"`
	Tip         int64      `json:"tip"`
	Fee         int64      `json:"fee"`
	Total       int64      `json:"total"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CustomerResponse контакт клиента
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
}

// OrderResponse заказ для владельца бизнеса
type OrderResponse struct {
	ID               uuid.UUID         `json:"id"`
	BusinessID       uuid.UUID         `json:"businessId"`
	OfferingID       uuid.UUID         `json:"offeringId"`
	CustomerID       uuid.UUID         `json:"customerId"`
	Customer         *CustomerResponse `json:"customer,omitempty"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Image            *string           `json:"image,omitempty"`
	Price            int64             `json:"price"`
	Currency         string            `json:"currency"`
	Start            time.Time         `json:"start"`
	End              time.Time         `json:"end"`
	Status           string            `json:"status"`
	Note             *string           `json:"note,omitempty"`
	PaymentRequested bool              `json:"paymentRequested"`
	Payment          *PaymentResponse  `json:"payment,omitempty"`
	Version          int64             `json:"version"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// OrderLiteResponse публичный вид заказа для страницы оплаты
type OrderLiteResponse struct {
	ID               uuid.UUID `json:"id"`
	BusinessName     string    `json:"businessName"`
	BusinessSign     string    `json:"businessSign"`
	TimeZone         string    `json:"timeZone"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Image            *string   `json:"image,omitempty"`
	Price            int64     `json:"price"`
	PriceFormatted   string    `json:"priceFormatted"`
	Currency         string    `json:"currency"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Status           string    `json:"status"`
	PaymentRequested bool      `json:"paymentRequested"`
	Paid             bool      `json:"paid"`
}

// CustomerSummaryResponse клиент бизнеса с количеством заказов
type CustomerSummaryResponse struct {
	CustomerResponse
	Orders      int       `json:"orders"`
	LastOrderAt time.Time `json:"lastOrderAt"`
}

// FromDomainOrder конвертирует заказ
func FromDomainOrder(o *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:               o.ID,
		BusinessID:       o.BusinessID,
		OfferingID:       o.OfferingID,
		CustomerID:       o.CustomerID,
		Title:            o.Title,
		Description:      o.Description,
		Image:            o.Image,
		Price:            o.Price,
		Currency:         o.Currency,
		Start:            o.Range.Start,
		End:              o.Range.End,
		Status:           string(o.Status),
		Note:             o.Note,
		PaymentRequested: o.PaymentRequested,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if p := o.Payment; p != nil {
		resp.Payment = &PaymentResponse{
			IntentID:    p.IntentID,
			Base:        p.Base,
			Tip:         p.Tip,
			Fee:         p.Fee,
			Total:       p.Total,
			CreatedAt:   p.CreatedAt,
			CompletedAt: p.CompletedAt,
		}
	}
	return resp
}

// FromDomainCustomer конвертирует клиента
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	}
}

// FromDomainLite конвертирует публичный вид заказа; время в часовом поясе бизнеса
func FromDomainLite(b *domain.Business, o *domain.Order) *OrderLiteResponse {
	r := o.Range.In(b.Loc())
	return &OrderLiteResponse{
		ID:               o.ID,
		BusinessName:     b.Name,
		BusinessSign:     b.Sign,
		TimeZone:         b.TimeZone,
		Title:            o.Title,
		Description:      o.Description,
		Image:            o.Image,
		Price:            o.Price,
		PriceFormatted:   domain.FormatAmount(o.Price),
		Currency:         o.Currency,
		Start:            r.Start,
		End:              r.End,
		Status:           string(o.Status),
		PaymentRequested: o.PaymentRequested,
		Paid:             o.Payment.IsCompleted(),
	}
}
