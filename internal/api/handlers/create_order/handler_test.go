package create_order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createOrder "github.com/m04kA/SMC-ReservationService/internal/usecase/create_order"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createOrder.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(t *testing.T, businessID string, body interface{}) *http.Request {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(raw))
	return mux.SetURLVars(req, map[string]string{"businessId": businessID})
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	businessID, offeringID, orderID := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createOrder.Request) bool {
		return req.BusinessID == businessID && req.OfferingID == offeringID &&
			req.Start.Equal(start) && req.Email == "jane@example.com"
	})).Return(&createOrder.Response{
		ID:         orderID,
		BusinessID: businessID,
		OfferingID: offeringID,
		Title:      "Haircut",
		Price:      5000,
		Currency:   "CAD",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Status:     "pending",
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, newRequest(t, businessID.String(), CreateOrderRequest{
		OfferingID: offeringID,
		Start:      start,
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "+14165550100",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, orderID, body.ID)
	assert.Equal(t, "pending", body.Status)
	uc.AssertExpectations(t)
}

func TestHandle_InvalidInput(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, "not-a-uuid", CreateOrderRequest{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest(t, uuid.New().String(), map[string]interface{}{"unknown": true}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "business not found", err: domain.ErrBusinessNotFound, want: http.StatusNotFound},
		{name: "offering not found", err: domain.ErrOfferingNotFound, want: http.StatusNotFound},
		{name: "slot taken", err: domain.ErrSlotUnavailable, want: http.StatusConflict},
		{name: "concurrent", err: domain.ErrConcurrentModification, want: http.StatusConflict},
		{name: "past start", err: domain.ErrPastStartTime, want: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := httptest.NewRecorder()

			NewHandler(uc, logger.Nop()).Handle(rec, newRequest(t, uuid.New().String(), CreateOrderRequest{
				OfferingID: uuid.New(),
				Start:      time.Now().Add(time.Hour),
			}))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
