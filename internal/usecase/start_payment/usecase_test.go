package start_payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) Update(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

type gatewayMock struct{ mock.Mock }

func (m *gatewayMock) CreateIntent(ctx context.Context, amount int64, currency string, md stripegateway.Metadata) (*stripegateway.Intent, error) {
	args := m.Called(ctx, amount, currency, md)
	i, _ := args.Get(0).(*stripegateway.Intent)
	return i, args.Error(1)
}

func (m *gatewayMock) UpdateIntent(ctx context.Context, intentID string, amount int64, md stripegateway.Metadata) (*stripegateway.Intent, error) {
	args := m.Called(ctx, intentID, amount, md)
	i, _ := args.Get(0).(*stripegateway.Intent)
	return i, args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newOrder() *domain.Order {
	return &domain.Order{
		ID:               uuid.New(),
		Status:           domain.OrderStatusApproved,
		Price:            100_00,
		Currency:         "CAD",
		PaymentRequested: true,
	}
}

func setup(o *domain.Order) (*UseCase, *orderRepoMock, *gatewayMock) {
	orders := &orderRepoMock{}
	orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	gateway := &gatewayMock{}
	return NewUseCase(orders, gateway, passthroughTx{}, logger.Nop()), orders, gateway
}

func TestExecute_CreatesIntent(t *testing.T) {
	o := newOrder()
	uc, orders, gateway := setup(o)
	md := stripegateway.Metadata{OrderID: o.ID, Tip: 5_00}
	gateway.On("CreateIntent", mock.Anything, int64(105_00), "CAD", md).
		Return(&stripegateway.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 105_00}, nil)
	orders.On("Update", mock.Anything, o).Return(nil)

	resp, err := uc.Execute(context.Background(), &Request{OrderID: o.ID, Tip: 5_00})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", resp.IntentID)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, int64(105_00), resp.Amount)
	require.NotNil(t, o.Payment)
	assert.Equal(t, "pi_1", o.Payment.IntentID)
	assert.Zero(t, o.Payment.Total)
	assert.Nil(t, o.Payment.CompletedAt)
}

func TestExecute_UpdatesExistingIntent(t *testing.T) {
	o := newOrder()
	o.Payment = &domain.Payment{IntentID: "pi_1"}
	uc, orders, gateway := setup(o)
	md := stripegateway.Metadata{OrderID: o.ID, Tip: 10_00}
	gateway.On("UpdateIntent", mock.Anything, "pi_1", int64(110_00), md).
		Return(&stripegateway.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 110_00}, nil)

	resp, err := uc.Execute(context.Background(), &Request{OrderID: o.ID, Tip: 10_00})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", resp.IntentID)
	assert.Equal(t, int64(110_00), resp.Amount)
	gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(o *domain.Order)
		tip     int64
		wantErr error
	}{
		{name: "negative tip", tip: -1, wantErr: domain.ErrInvalidAmount},
		{name: "not requested", prepare: func(o *domain.Order) { o.PaymentRequested = false }, wantErr: domain.ErrPaymentNotRequested},
		{name: "declined", prepare: func(o *domain.Order) { o.Status = domain.OrderStatusDeclined }, wantErr: domain.ErrInvalidTransition},
		{name: "already paid", prepare: func(o *domain.Order) {
			o.Payment = &domain.Payment{IntentID: "pi_1", Total: o.Price}
		}, wantErr: domain.ErrAlreadyPaid},
		{name: "zero amount", prepare: func(o *domain.Order) { o.Price = 0 }, wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder()
			if tt.prepare != nil {
				tt.prepare(o)
			}
			uc, _, gateway := setup(o)

			_, err := uc.Execute(context.Background(), &Request{OrderID: o.ID, Tip: tt.tip})
			assert.ErrorIs(t, err, tt.wantErr)
			gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_GatewayFailure(t *testing.T) {
	o := newOrder()
	uc, orders, gateway := setup(o)
	gateway.On("CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("stripe down"))

	_, err := uc.Execute(context.Background(), &Request{OrderID: o.ID})
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Nil(t, o.Payment)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
