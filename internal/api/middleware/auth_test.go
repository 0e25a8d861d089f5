package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func echoAccount(t *testing.T, want uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetAccountID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, want, id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	account := uuid.New()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid account", header: account.String(), want: http.StatusNoContent},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "malformed header", header: "12345", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(AccountIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(echoAccount(t, account)).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestOperator(t *testing.T) {
	operator := uuid.New()
	mw := Operator([]uuid.UUID{operator})

	t.Run("operator passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithAccountID(req.Context(), operator))
		rec := httptest.NewRecorder()

		mw(echoAccount(t, operator)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithAccountID(req.Context(), uuid.New()))
		rec := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("without auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
