package complete_payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) CompletePayment(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Business)
	return b, args.Error(1)
}

type customerRepoMock struct{ mock.Mock }

func (m *customerRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Customer)
	return c, args.Error(1)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyBusinessOwner(accountID uuid.UUID, kind notify.Kind, payload notify.Payload) {
	m.Called(accountID, kind, payload)
}

type metricsStub struct{ reconciled int }

func (m *metricsStub) PaymentReconciled() { m.reconciled++ }

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	uc       *UseCase
	orders   *orderRepoMock
	notifier *notifierMock
	metrics  *metricsStub
	business *domain.Business
	order    *domain.Order
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &domain.Business{ID: uuid.New(), OwnerAccountID: uuid.New()}
	o := &domain.Order{
		ID:               uuid.New(),
		BusinessID:       b.ID,
		CustomerID:       uuid.New(),
		Status:           domain.OrderStatusApproved,
		Price:            100_00,
		PaymentRequested: true,
		Payment:          &domain.Payment{IntentID: "pi_1"},
	}

	f := &fixture{orders: &orderRepoMock{}, notifier: &notifierMock{}, metrics: &metricsStub{}, business: b, order: o, now: now}
	f.orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	customers := &customerRepoMock{}
	customers.On("GetByID", mock.Anything, o.CustomerID).
		Return(&domain.Customer{FirstName: "Jane", LastName: "Doe"}, nil)

	f.uc = NewUseCase(f.orders, businesses, customers, f.notifier, f.metrics, passthroughTx{},
		decimal.RequireFromString("0.08"), logger.Nop())
	f.uc.timeProvider = fixedTime{now}
	return f
}

func (f *fixture) request() *Request {
	return &Request{IntentID: "pi_1", AmountReceived: 105_00, OrderID: f.order.ID, Tip: 5_00}
}

func TestExecute_SplitsPayment(t *testing.T) {
	f := newFixture()
	f.orders.On("CompletePayment", mock.Anything, f.order).Return(nil)
	f.notifier.On("NotifyBusinessOwner", f.business.OwnerAccountID, notify.KindPaymentReceived,
		mock.MatchedBy(func(p notify.Payload) bool { return p.Amount == "97.00" })).Return()

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, int64(100_00), resp.Base)
	assert.Equal(t, int64(5_00), resp.Tip)
	assert.Equal(t, int64(8_00), resp.Fee)
	assert.Equal(t, int64(97_00), resp.Total)
	assert.Equal(t, f.now, resp.CompletedAt)
	assert.Equal(t, 1, f.metrics.reconciled)
	f.notifier.AssertExpectations(t)
}

func TestExecute_FeeRoundsUp(t *testing.T) {
	f := newFixture()
	f.orders.On("CompletePayment", mock.Anything, f.order).Return(nil)
	f.notifier.On("NotifyBusinessOwner", mock.Anything, mock.Anything, mock.Anything).Return()
	req := f.request()
	req.AmountReceived, req.Tip = 12_34, 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 1234 * 0.08 = 98.72
	assert.Equal(t, int64(99), resp.Fee)
	assert.Equal(t, int64(12_34-99), resp.Total)
}

func TestExecute_DuplicateDelivery(t *testing.T) {
	f := newFixture()
	completed := f.now.Add(-time.Minute)
	f.order.Payment.CompletedAt = &completed
	f.order.Payment.Total = 97_00

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrDuplicateDelivery)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
	assert.Equal(t, int64(97_00), f.order.Payment.Total)
	f.orders.AssertNotCalled(t, "CompletePayment", mock.Anything, mock.Anything)
	assert.Zero(t, f.metrics.reconciled)
}

func TestExecute_IntentMismatch(t *testing.T) {
	f := newFixture()
	req := f.request()
	req.IntentID = "pi_other"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
	assert.NotErrorIs(t, err, ErrDuplicateDelivery)
}

func TestExecute_UnknownOrder(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.orders.On("GetByID", mock.Anything, missing).Return(nil, orderRepo.ErrOrderNotFound)
	req := f.request()
	req.OrderID = missing

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
}

func TestExecute_TipAboveReceived(t *testing.T) {
	f := newFixture()
	req := f.request()
	req.Tip = req.AmountReceived + 1

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestExecute_ConcurrentDelivery(t *testing.T) {
	f := newFixture()
	f.orders.On("CompletePayment", mock.Anything, f.order).Return(orderRepo.ErrVersionConflict)

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}
