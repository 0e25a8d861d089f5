package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/service/orders/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Order)
	return list, args.Error(1)
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

func (m *customerRepoMock) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.CustomerSummary, error) {
	args := m.Called(ctx, businessID)
	list, _ := args.Get(0).([]domain.CustomerSummary)
	return list, args.Error(1)
}

type fixture struct {
	svc       *Service
	orders    *orderRepoMock
	customers *customerRepoMock
	business  *domain.Business
	order     *domain.Order
}

func newFixture() *fixture {
	b := &domain.Business{ID: uuid.New(), OwnerAccountID: uuid.New(), Name: "Fade Lab", Sign: "fadelab", TimeZone: "America/Toronto"}
	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	o := &domain.Order{
		ID:         uuid.New(),
		BusinessID: b.ID,
		CustomerID: uuid.New(),
		Title:      "Haircut",
		Price:      40_00,
		Currency:   "CAD",
		Status:     domain.OrderStatusApproved,
		Range:      domain.TimeRange{Start: start, End: start.Add(time.Hour)},
	}

	f := &fixture{orders: &orderRepoMock{}, customers: &customerRepoMock{}, business: b, order: o}
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	f.orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	f.svc = NewService(f.orders, businesses, f.customers, logger.Nop())
	return f
}

func TestGetOrders_Filter(t *testing.T) {
	f := newFixture()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	approved := domain.OrderStatusApproved
	f.orders.On("List", mock.Anything, domain.OrderFilter{
		BusinessID: f.business.ID, Status: &approved, From: &from, To: &to,
	}).Return([]*domain.Order{f.order}, nil)

	list, err := f.svc.GetOrders(context.Background(), &models.GetOrdersRequest{
		AccountID: f.business.OwnerAccountID, BusinessID: f.business.ID,
		Status: ptr.Ptr("approved"), From: &from, To: &to,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "approved", list[0].Status)
}

func TestGetOrders_InvalidFilter(t *testing.T) {
	f := newFixture()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.GetOrders(context.Background(), &models.GetOrdersRequest{
		AccountID: f.business.OwnerAccountID, BusinessID: f.business.ID, Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.GetOrders(context.Background(), &models.GetOrdersRequest{
		AccountID: f.business.OwnerAccountID, BusinessID: f.business.ID, From: &from, To: &from,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestGetOrders_NotOwner(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetOrders(context.Background(), &models.GetOrdersRequest{AccountID: uuid.New(), BusinessID: f.business.ID})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestGetOrder_WithCustomer(t *testing.T) {
	f := newFixture()
	f.customers.On("GetByID", mock.Anything, f.order.CustomerID).
		Return(&domain.Customer{ID: f.order.CustomerID, Email: "jane@example.com"}, nil)

	resp, err := f.svc.GetOrder(context.Background(), f.business.OwnerAccountID, f.business.ID, f.order.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "jane@example.com", resp.Customer.Email)
}

func TestGetOrder_CustomerMissing(t *testing.T) {
	f := newFixture()
	f.customers.On("GetByID", mock.Anything, f.order.CustomerID).Return(nil, customerRepo.ErrCustomerNotFound)

	resp, err := f.svc.GetOrder(context.Background(), f.business.OwnerAccountID, f.business.ID, f.order.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.Customer)
}

func TestGetOrderLite(t *testing.T) {
	f := newFixture()
	completed := time.Now()
	f.order.PaymentRequested = true
	f.order.Payment = &domain.Payment{IntentID: "pi_1", CompletedAt: &completed}

	resp, err := f.svc.GetOrderLite(context.Background(), f.order.ID)
	require.NoError(t, err)

	assert.Equal(t, "Fade Lab", resp.BusinessName)
	assert.Equal(t, "40.00", resp.PriceFormatted)
	assert.True(t, resp.Paid)
	assert.Equal(t, 9, resp.Start.Hour()) // 14:00 UTC = 09:00 EST
}

func TestGetOrderLite_Unknown(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.orders.On("GetByID", mock.Anything, missing).Return(nil, orderRepo.ErrOrderNotFound)

	_, err := f.svc.GetOrderLite(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
}

func TestGetCustomers(t *testing.T) {
	f := newFixture()
	last := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	f.customers.On("ListByBusiness", mock.Anything, f.business.ID).Return([]domain.CustomerSummary{
		{Customer: domain.Customer{Email: "jane@example.com", FirstName: "Jane"}, Orders: 3, LastOrderAt: last},
	}, nil)

	list, err := f.svc.GetCustomers(context.Background(), f.business.OwnerAccountID, f.business.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Orders)
	assert.Equal(t, "jane@example.com", list[0].Email)
}
