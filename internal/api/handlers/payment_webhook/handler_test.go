package payment_webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
	completePayment "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_payment"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockParser struct {
	mock.Mock
}

func (m *mockParser) ParseEvent(payload []byte, signature string) (*stripegateway.PaymentEvent, error) {
	args := m.Called(string(payload), signature)
	if e := args.Get(0); e != nil {
		return e.(*stripegateway.PaymentEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *completePayment.Request) (*completePayment.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*completePayment.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

const payload = `{"type":"payment_intent.succeeded"}`

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(payload))
	req.Header.Set(SignatureHeader, "t=1,v1=abc")
	return req
}

func TestHandle_CompletesPayment(t *testing.T) {
	parser, uc := &mockParser{}, &mockUseCase{}
	orderID := uuid.New()
	event := &stripegateway.PaymentEvent{IntentID: "pi_1", AmountReceived: 10500, OrderID: orderID, Tip: 500}

	parser.On("ParseEvent", payload, "t=1,v1=abc").Return(event, nil)
	uc.On("Execute", mock.Anything, &completePayment.Request{
		IntentID: "pi_1", AmountReceived: 10500, OrderID: orderID, Tip: 500,
	}).Return(&completePayment.Response{
		OrderID: orderID, Base: 10000, Tip: 500, Fee: 800, Total: 9700, CompletedAt: time.Now(),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(parser, uc, logger.Nop()).Handle(rec, newRequest())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	parser.AssertExpectations(t)
	uc.AssertExpectations(t)
}

func TestHandle_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ignored event", err: stripegateway.ErrIgnoredEvent, want: http.StatusOK},
		{name: "bad signature", err: stripegateway.ErrInvalidSignature, want: http.StatusBadRequest},
		{name: "bad payload", err: stripegateway.ErrInvalidPayload, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, uc := &mockParser{}, &mockUseCase{}
			parser.On("ParseEvent", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := httptest.NewRecorder()

			NewHandler(parser, uc, logger.Nop()).Handle(rec, newRequest())

			assert.Equal(t, tt.want, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "duplicate delivery is acknowledged", err: completePayment.ErrDuplicateDelivery, want: http.StatusOK},
		{name: "unknown order", err: domain.ErrUnknownOrder, want: http.StatusNotFound},
		{name: "bad amounts", err: domain.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "concurrent delivery", err: domain.ErrConcurrentModification, want: http.StatusConflict},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, uc := &mockParser{}, &mockUseCase{}
			parser.On("ParseEvent", mock.Anything, mock.Anything).
				Return(&stripegateway.PaymentEvent{IntentID: "pi_1", AmountReceived: 100, OrderID: uuid.New()}, nil)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := httptest.NewRecorder()

			NewHandler(parser, uc, logger.Nop()).Handle(rec, newRequest())

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
