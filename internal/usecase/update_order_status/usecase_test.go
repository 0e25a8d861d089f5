package update_order_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
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

func (m *orderRepoMock) Update(ctx context.Context, o *domain.Order) error {
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

func (m *notifierMock) NotifyCustomer(email string, kind notify.Kind, payload notify.Payload) {
	m.Called(email, kind, payload)
}

type metricsStub struct{ statuses []string }

func (m *metricsStub) OrderTransition(status string) { m.statuses = append(m.statuses, status) }

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	uc        *UseCase
	orders    *orderRepoMock
	customers *customerRepoMock
	notifier  *notifierMock
	metrics   *metricsStub
	business  *domain.Business
	order     *domain.Order
	now       time.Time
}

func newFixture(status domain.OrderStatus) *fixture {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &domain.Business{ID: uuid.New(), OwnerAccountID: uuid.New(), Name: "Fade Lab"}
	start := now.Add(72 * time.Hour)
	o := &domain.Order{
		ID:         uuid.New(),
		BusinessID: b.ID,
		CustomerID: uuid.New(),
		Title:      "Haircut",
		Status:     status,
		Range:      domain.TimeRange{Start: start, End: start.Add(time.Hour)},
		Version:    1,
	}

	f := &fixture{
		orders:    &orderRepoMock{},
		customers: &customerRepoMock{},
		notifier:  &notifierMock{},
		metrics:   &metricsStub{},
		business:  b,
		order:     o,
		now:       now,
	}
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	f.orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	f.uc = NewUseCase(f.orders, businesses, f.customers, f.notifier, f.metrics, passthroughTx{}, logger.Nop())
	f.uc.timeProvider = fixedTime{now}
	return f
}

func (f *fixture) request(status string) *Request {
	return &Request{AccountID: f.business.OwnerAccountID, BusinessID: f.business.ID, OrderID: f.order.ID, Status: status}
}

func TestExecute_ApproveNotifiesCustomer(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	f.orders.On("Update", mock.Anything, f.order).Return(nil)
	f.customers.On("GetByID", mock.Anything, f.order.CustomerID).
		Return(&domain.Customer{Email: "jane@example.com"}, nil)
	f.notifier.On("NotifyCustomer", "jane@example.com", notify.KindOrderStatusChanged, mock.Anything).Return()

	resp, err := f.uc.Execute(context.Background(), f.request("approved"))
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, []string{"approved"}, f.metrics.statuses)
	f.notifier.AssertExpectations(t)
}

func TestExecute_CompleteDoesNotNotify(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	f.orders.On("Update", mock.Anything, f.order).Return(nil)

	resp, err := f.uc.Execute(context.Background(), f.request("completed"))
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	f.notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DeclineWithPayment(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	f.order.Payment = &domain.Payment{IntentID: "pi_1"}

	_, err := f.uc.Execute(context.Background(), f.request("declined"))
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_ApprovePastStart(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	f.order.Range.Start = f.now.Add(-time.Minute)

	_, err := f.uc.Execute(context.Background(), f.request("approved"))
	assert.ErrorIs(t, err, domain.ErrPastStartTime)
}

func TestExecute_NotOwner(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	req := f.request("approved")
	req.AccountID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestExecute_OtherBusiness(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	req := f.request("approved")
	req.BusinessID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
}

func TestExecute_VersionConflict(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	f.orders.On("Update", mock.Anything, f.order).Return(orderRepo.ErrVersionConflict)

	_, err := f.uc.Execute(context.Background(), f.request("declined"))
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestExecute_InvalidStatus(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)

	_, err := f.uc.Execute(context.Background(), f.request("cancelled"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_PendingTargetRejected(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)

	_, err := f.uc.Execute(context.Background(), f.request("pending"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestExecute_CustomerLookupFailureStillSucceeds(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)
	f.orders.On("Update", mock.Anything, f.order).Return(nil)
	f.customers.On("GetByID", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), f.request("declined"))
	assert.NoError(t, err)
}
