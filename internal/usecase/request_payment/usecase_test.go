package request_payment

import (
	"context"
	"testing"

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

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixture struct {
	uc       *UseCase
	orders   *orderRepoMock
	notifier *notifierMock
	business *domain.Business
	order    *domain.Order
}

func newFixture(status domain.OrderStatus) *fixture {
	b := &domain.Business{ID: uuid.New(), OwnerAccountID: uuid.New(), Name: "Fade Lab", Currency: "CAD"}
	o := &domain.Order{
		ID:         uuid.New(),
		BusinessID: b.ID,
		CustomerID: uuid.New(),
		Status:     status,
		Price:      40_00,
		Currency:   "CAD",
		Version:    2,
	}

	f := &fixture{orders: &orderRepoMock{}, notifier: &notifierMock{}, business: b, order: o}
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	customers := &customerRepoMock{}
	customers.On("GetByID", mock.Anything, o.CustomerID).Return(&domain.Customer{Email: "jane@example.com"}, nil)
	f.orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	f.uc = NewUseCase(f.orders, businesses, customers, f.notifier, passthroughTx{}, logger.Nop())
	return f
}

func (f *fixture) request(price int64) *Request {
	return &Request{AccountID: f.business.OwnerAccountID, BusinessID: f.business.ID, OrderID: f.order.ID, Price: price}
}

func TestExecute_RequestsPayment(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	f.orders.On("Update", mock.Anything, f.order).Return(nil)
	f.notifier.On("NotifyCustomer", "jane@example.com", notify.KindPaymentRequested,
		mock.MatchedBy(func(p notify.Payload) bool { return p.Amount == "55.00" })).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(55_00))
	require.NoError(t, err)

	assert.True(t, resp.PaymentRequested)
	assert.Equal(t, int64(55_00), resp.Price)
	assert.Equal(t, "approved", resp.Status)
	f.notifier.AssertExpectations(t)
}

func TestExecute_FreeOrder(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	f.orders.On("Update", mock.Anything, f.order).Return(nil)
	f.notifier.On("NotifyCustomer", mock.Anything, mock.Anything, mock.Anything).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Price)
}

func TestExecute_NotApproved(t *testing.T) {
	f := newFixture(domain.OrderStatusPending)

	_, err := f.uc.Execute(context.Background(), f.request(55_00))
	assert.ErrorIs(t, err, domain.ErrNotApproved)
}

func TestExecute_PriceOutOfBounds(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)

	_, err := f.uc.Execute(context.Background(), f.request(5_00))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), f.request(domain.MaxPrice+1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_NotOwner(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	req := f.request(55_00)
	req.AccountID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestExecute_UnknownOrder(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	missing := uuid.New()
	f.orders.On("GetByID", mock.Anything, missing).Return(nil, orderRepo.ErrOrderNotFound)
	req := f.request(55_00)
	req.OrderID = missing

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
}

func TestExecute_VersionConflict(t *testing.T) {
	f := newFixture(domain.OrderStatusApproved)
	f.orders.On("Update", mock.Anything, f.order).Return(orderRepo.ErrVersionConflict)

	_, err := f.uc.Execute(context.Background(), f.request(55_00))
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}
