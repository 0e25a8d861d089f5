package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// OfferingInput данные услуги
type OfferingInput struct {
	Type            string  `json:"type"`
	Price           int64   `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Image           *string `json:"image,omitempty"`
	Index           int     `json:"index"`
}

// ToDomain конвертирует вход в доменную услугу
func (in OfferingInput) ToDomain(id uuid.UUID) domain.Offering {
	offeringType := domain.OfferingType(in.Type)
	if in.Type == "" {
		offeringType = domain.OfferingTypeGenesis
	}
	return domain.Offering{
		ID:          id,
		Type:        offeringType,
		Price:       in.Price,
		Duration:    time.Duration(in.DurationMinutes) * time.Minute,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Index:       in.Index,
	}
}

// ScheduleInput часы работы на один день недели
type ScheduleInput struct {
	DayOfWeek int              `json:"dayOfWeek"` // 0 = воскресенье
	StartTime types.TimeString `json:"startTime"` // "09:00"
	EndTime   types.TimeString `json:"endTime"`   // "18:00"
}

// ToDomainSchedule конвертирует расписание
func ToDomainSchedule(in []ScheduleInput) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, 0, len(in))
	for _, e := range in {
		entries = append(entries, domain.ScheduleEntry{
			DayOfWeek: time.Weekday(e.DayOfWeek),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return entries
}

// CreateBusinessRequest запрос на регистрацию бизнеса
type CreateBusinessRequest struct {
	AccountID uuid.UUID       `json:"-"`
	Sign      string          `json:"sign"`
	Name      string          `json:"name"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Offerings []OfferingInput `json:"offerings"`
	Schedule  []ScheduleInput `json:"schedule"`
}

// UpdateBusinessRequest частичное обновление бизнеса
// Координаты передаются парой, иначе игнорируются
type UpdateBusinessRequest struct {
	AccountID  uuid.UUID `json:"-"`
	BusinessID uuid.UUID `json:"-"`
	Version    *int64    `json:"version,omitempty"`
	Sign       *string   `json:"sign,omitempty"`
	Name       *string   `json:"name,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	IsActive   *bool     `json:"isActive,omitempty"`
}

// HasCoordinates переданы ли обе координаты
func (r *UpdateBusinessRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// AddOfferingRequest запрос на добавление услуги
type AddOfferingRequest struct {
	AccountID  uuid.UUID     `json:"-"`
	BusinessID uuid.UUID     `json:"-"`
	Offering   OfferingInput `json:"offering"`
}

// UpdateOfferingRequest частичное обновление услуги
type UpdateOfferingRequest struct {
	AccountID       uuid.UUID `json:"-"`
	BusinessID      uuid.UUID `json:"-"`
	OfferingID      uuid.UUID `json:"-"`
	Price           *int64    `json:"price,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Image           *string   `json:"image,omitempty"`
	Index           *int      `json:"index,omitempty"`
}

// Apply применяет переданные поля к услуге
func (r *UpdateOfferingRequest) Apply(o *domain.Offering) {
	if r.Price != nil {
		o.Price = *r.Price
	}
	if r.DurationMinutes != nil {
		o.Duration = time.Duration(*r.DurationMinutes) * time.Minute
	}
	if r.Title != nil {
		o.Title = *r.Title
	}
	if r.Description != nil {
		o.Description = *r.Description
	}
	if r.Image != nil {
		o.Image = r.Image
	}
	if r.Index != nil {
		o.Index = *r.Index
	}
}

// DeleteOfferingRequest запрос на удаление услуги
type DeleteOfferingRequest struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
	OfferingID uuid.UUID
}

// SetScheduleRequest полная замена расписания
type SetScheduleRequest struct {
	AccountID  uuid.UUID       `json:"-"`
	BusinessID uuid.UUID       `json:"-"`
	Schedule   []ScheduleInput `json:"schedule"`
}

// AddBlockedRequest запрос на закрытие интервала
type AddBlockedRequest struct {
	AccountID  uuid.UUID `json:"-"`
	BusinessID uuid.UUID `json:"-"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// ListBlockedRequest запрос списка закрытых интервалов
type ListBlockedRequest struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Window окно выборки, если передано полностью
func (r *ListBlockedRequest) Window() (*domain.TimeRange, error) {
	if r.From == nil || r.To == nil {
		return nil, nil
	}
	window, err := domain.NewTimeRange(*r.From, *r.To)
	if err != nil {
		return nil, fmt.Errorf("from must be before to: %w", err)
	}
	return &window, nil
}

// DeleteBlockedRequest запрос на удаление закрытого интервала
type DeleteBlockedRequest struct {
	AccountID  uuid.UUID
	BusinessID uuid.UUID
	BlockedID  uuid.UUID
}

// Response модели

// OfferingResponse услуга
type OfferingResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Price           int64     `json:"price"`
	PriceFormatted  string    `json:"priceFormatted"`
	DurationMinutes int       `json:"durationMinutes"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           *string   `json:"image,omitempty"`
	Index           int       `json:"index"`
}

// ScheduleResponse часы работы
type ScheduleResponse struct {
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// BusinessResponse бизнес с услугами и расписанием
type BusinessResponse struct {
	ID        uuid.UUID          `json:"id"`
	Sign      string             `json:"sign"`
	Name      string             `json:"name"`
	Currency  string             `json:"currency"`
	TimeZone  string             `json:"timeZone"`
	Location  string             `json:"location"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	IsActive  bool               `json:"isActive"`
	Version   int64              `json:"version"`
	Offerings []OfferingResponse `json:"offerings"`
	Schedule  []ScheduleResponse `json:"schedule"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// BlockedResponse закрытый интервал
type BlockedResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromDomainOffering конвертирует услугу
func FromDomainOffering(o domain.Offering) OfferingResponse {
	return OfferingResponse{
		ID:              o.ID,
		Type:            string(o.Type),
		Price:           o.Price,
		PriceFormatted:  domain.FormatAmount(o.Price),
		DurationMinutes: int(o.Duration / time.Minute),
		Title:           o.Title,
		Description:     o.Description,
		Image:           o.Image,
		Index:           o.Index,
	}
}

// FromDomainBusiness конвертирует бизнес; удалённые услуги не попадают в ответ
func FromDomainBusiness(b *domain.Business) *BusinessResponse {
	resp := &BusinessResponse{
		ID:        b.ID,
		Sign:      b.Sign,
		Name:      b.Name,
		Currency:  b.Currency,
		TimeZone:  b.TimeZone,
		Location:  b.Location,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		IsActive:  b.IsActive,
		Version:   b.Version,
		Offerings: make([]OfferingResponse, 0, len(b.Offerings)),
		Schedule:  make([]ScheduleResponse, 0, len(b.Schedule)),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for _, o := range b.Offerings {
		if !o.IsDeleted() {
			resp.Offerings = append(resp.Offerings, FromDomainOffering(o))
		}
	}
	for _, e := range b.Schedule {
		resp.Schedule = append(resp.Schedule, ScheduleResponse{
			DayOfWeek: int(e.DayOfWeek),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return resp
}

// FromDomainBlocked конвертирует закрытый интервал
func FromDomainBlocked(p domain.BlockedPeriod) BlockedResponse {
	return BlockedResponse{ID: p.ID, Title: p.Title, Start: p.Range.Start, End: p.Range.End}
}
