package businesses

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/business"
	"github.com/m04kA/SMC-ReservationService/internal/service/business/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateBusiness(ctx context.Context, req *models.CreateBusinessRequest) (*models.BusinessResponse, error) {
	args := m.Called(ctx, req)
	return businessResult(args)
}

func (m *mockService) UpdateBusiness(ctx context.Context, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error) {
	args := m.Called(ctx, req)
	return businessResult(args)
}

func (m *mockService) GetBySign(ctx context.Context, sign string) (*models.BusinessResponse, error) {
	args := m.Called(ctx, sign)
	return businessResult(args)
}

func (m *mockService) ListMine(ctx context.Context, accountID uuid.UUID) ([]*models.BusinessResponse, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.([]*models.BusinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.BusinessResponse, error) {
	args := m.Called(ctx, req)
	return businessResult(args)
}

func businessResult(args mock.Arguments) (*models.BusinessResponse, error) {
	if v := args.Get(0); v != nil {
		return v.(*models.BusinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func withAccount(req *http.Request, account uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithAccountID(req.Context(), account))
}

func TestCreate(t *testing.T) {
	svc := &mockService{}
	account := uuid.New()
	svc.On("CreateBusiness", mock.Anything, mock.MatchedBy(func(req *models.CreateBusinessRequest) bool {
		return req.AccountID == account && req.Sign == "barber" && len(req.Offerings) == 1
	})).Return(&models.BusinessResponse{ID: uuid.New(), Sign: "barber"}, nil)

	body := `{"sign":"barber","name":"Barber","latitude":43.65,"longitude":-79.38,
		"offerings":[{"price":5000,"durationMinutes":30,"title":"Haircut"}]}`
	req := withAccount(httptest.NewRequest(http.MethodPost, "/businesses", strings.NewReader(body)), account)
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "sign taken", err: domain.ErrSignTaken, want: http.StatusConflict},
		{name: "location not found", err: business.ErrLocationNotFound, want: http.StatusBadRequest},
		{name: "geocoding down", err: fmt.Errorf("%w: timeout", business.ErrGeocoding), want: http.StatusBadGateway},
		{name: "invalid name", err: domain.NewValidationError("name is too long"), want: http.StatusBadRequest},
		{name: "internal", err: business.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("CreateBusiness", mock.Anything, mock.Anything).Return(nil, tt.err)
			req := withAccount(httptest.NewRequest(http.MethodPost, "/businesses", strings.NewReader(`{"sign":"abc"}`)), uuid.New())
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.Nop()).Create(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCreate_MissingAccount(t *testing.T) {
	svc := &mockService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).Create(rec, httptest.NewRequest(http.MethodPost, "/businesses", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "CreateBusiness", mock.Anything, mock.Anything)
}

func TestUpdate(t *testing.T) {
	svc := &mockService{}
	account, businessID := uuid.New(), uuid.New()
	svc.On("UpdateBusiness", mock.Anything, mock.MatchedBy(func(req *models.UpdateBusinessRequest) bool {
		return req.AccountID == account && req.BusinessID == businessID &&
			req.Name != nil && *req.Name == "New name" && req.Version != nil && *req.Version == 3
	})).Return(&models.BusinessResponse{ID: businessID, Name: "New name", Version: 4}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/businesses/x", strings.NewReader(`{"version":3,"name":"New name"}`))
	req = mux.SetURLVars(withAccount(req, account), map[string]string{"businessId": businessID.String()})
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":4`)
}

func TestUpdate_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "stale version", err: domain.ErrConcurrentModification, want: http.StatusConflict},
		{name: "not owner", err: domain.ErrAccessDenied, want: http.StatusForbidden},
		{name: "not found", err: domain.ErrBusinessNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateBusiness", mock.Anything, mock.Anything).Return(nil, tt.err)
			req := httptest.NewRequest(http.MethodPatch, "/businesses/x", strings.NewReader(`{"name":"x"}`))
			req = mux.SetURLVars(withAccount(req, uuid.New()), map[string]string{"businessId": uuid.New().String()})
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.Nop()).Update(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGetBySign(t *testing.T) {
	svc := &mockService{}
	svc.On("GetBySign", mock.Anything, "barber").Return(&models.BusinessResponse{Sign: "barber"}, nil)
	svc.On("GetBySign", mock.Anything, "closed").Return(nil, domain.ErrBusinessNotFound)
	h := NewHandler(svc, logger.Nop())

	rec := httptest.NewRecorder()
	h.GetBySign(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"sign": "barber"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetBySign(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"sign": "closed"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMine(t *testing.T) {
	svc := &mockService{}
	account := uuid.New()
	svc.On("ListMine", mock.Anything, account).
		Return([]*models.BusinessResponse{{Sign: "a"}, {Sign: "b"}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).ListMine(rec, withAccount(httptest.NewRequest(http.MethodGet, "/businesses", nil), account))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sign":"b"`)
}

func TestSetSchedule(t *testing.T) {
	svc := &mockService{}
	account, businessID := uuid.New(), uuid.New()
	svc.On("SetSchedule", mock.Anything, mock.MatchedBy(func(req *models.SetScheduleRequest) bool {
		return req.BusinessID == businessID && len(req.Schedule) == 1 &&
			req.Schedule[0].StartTime.String() == "09:00"
	})).Return(&models.BusinessResponse{ID: businessID, Schedule: []models.ScheduleResponse{{DayOfWeek: 1}}}, nil)

	body := `{"schedule":[{"dayOfWeek":1,"startTime":"09:00","endTime":"17:00"}]}`
	req := httptest.NewRequest(http.MethodPut, "/schedule", strings.NewReader(body))
	req = mux.SetURLVars(withAccount(req, account), map[string]string{"businessId": businessID.String()})
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).SetSchedule(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestSetSchedule_InvalidBody(t *testing.T) {
	svc := &mockService{}
	req := httptest.NewRequest(http.MethodPut, "/schedule", strings.NewReader(`{"schedule":[{"startTime":"9am"}]}`))
	req = mux.SetURLVars(withAccount(req, uuid.New()), map[string]string{"businessId": uuid.New().String()})
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).SetSchedule(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
