package withdraw

import (
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

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	withdrawUC "github.com/m04kA/SMC-ReservationService/internal/usecase/withdraw"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *withdrawUC.Request) (*withdrawUC.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*withdrawUC.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(account, businessID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", nil)
	req = req.WithContext(middleware.WithAccountID(req.Context(), account))
	return mux.SetURLVars(req, map[string]string{"businessId": businessID.String()})
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	account, businessID, id := uuid.New(), uuid.New(), uuid.New()
	uc.On("Execute", mock.Anything, &withdrawUC.Request{AccountID: account, BusinessID: businessID}).
		Return(&withdrawUC.Response{ID: id, BusinessID: businessID, Amount: 7700, Status: "pending", CreatedAt: time.Now()}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, newRequest(account, businessID))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body WithdrawalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "77.00", body.AmountFormatted)
	assert.Equal(t, "pending", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown business", err: domain.ErrBusinessNotFound, want: http.StatusNotFound},
		{name: "not owner", err: domain.ErrAccessDenied, want: http.StatusForbidden},
		{name: "nothing available", err: domain.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "serialization", err: domain.ErrConcurrentModification, want: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := httptest.NewRecorder()

			NewHandler(uc, logger.Nop()).Handle(rec, newRequest(uuid.New(), uuid.New()))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
