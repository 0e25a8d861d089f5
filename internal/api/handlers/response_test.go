package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.ErrSlotUnavailable), http.StatusConflict},
		{domain.ErrUnknownOrder, http.StatusNotFound},
		{domain.ErrAccessDenied, http.StatusForbidden},
		{fmt.Errorf("gateway: %w", domain.ErrExternalService), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestRespondDomainError_HidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestRespondDomainError_DomainMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("create_order: %w", domain.ErrSlotUnavailable))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"code":409,"message":"slot is unavailable"}`, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "a", v.Name)
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"orderId": id.String()})

	got, err := PathUUID(r, "orderId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathUUID(r, "businessId")
	assert.Error(t, err)

	r = mux.SetURLVars(r, map[string]string{"orderId": "42"})
	_, err = PathUUID(r, "orderId")
	assert.Error(t, err)
}
