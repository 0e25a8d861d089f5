package order

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func sampleOrder() *domain.Order {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		OfferingID: uuid.New(),
		CustomerID: uuid.New(),
		Price:      100_00,
		Title:      "Haircut",
		Currency:   "CAD",
		Range:      domain.TimeRange{Start: start, End: start.Add(time.Hour)},
		Status:     domain.OrderStatusPending,
		Version:    1,
	}
}

func orderRow(o *domain.Order, payment []driver.Value) *sqlmock.Rows {
	values := []driver.Value{
		o.ID.String(), o.BusinessID.String(), o.OfferingID.String(), o.CustomerID.String(),
		o.Price, o.Title, o.Description, nil, o.Currency,
		o.Range.Start, o.Range.End, string(o.Status), nil, o.PaymentRequested,
	}
	if payment == nil {
		payment = []driver.Value{nil, nil, nil, nil, nil, nil, nil}
	}
	values = append(values, payment...)
	values = append(values, o.Version, o.CreatedAt, o.UpdatedAt)
	return sqlmock.NewRows(orderColumns).AddRow(values...)
}

func TestCreate_ExclusionViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgerrcode.ExclusionViolation)})

	err := repo.Create(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_SerializationFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgerrcode.SerializationFailure)})

	err := repo.Create(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestGetByID_WithPayment(t *testing.T) {
	repo, mock := newRepo(t)
	o := sampleOrder()
	completed := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, business_id")).
		WithArgs(o.ID).
		WillReturnRows(orderRow(o, []driver.Value{"pi_123", int64(10000), int64(500), int64(800), int64(9700), completed, completed}))

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "pi_123", got.Payment.IntentID)
	assert.Equal(t, int64(9700), got.Payment.Total)
	assert.True(t, got.Payment.IsCompleted())
	assert.Equal(t, o.ID, got.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, business_id")).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetByID_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(orderRow(o, nil))

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	got, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), o.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_VersionConflict(t *testing.T) {
	repo, mock := newRepo(t)
	o := sampleOrder()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), o)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, int64(1), o.Version)
}

func TestUpdate_BumpsVersion(t *testing.T) {
	repo, mock := newRepo(t)
	o := sampleOrder()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), o))
	assert.Equal(t, int64(2), o.Version)
}

func TestCompletePayment_GuardsCompletedAt(t *testing.T) {
	repo, mock := newRepo(t)
	o := sampleOrder()
	o.Payment = &domain.Payment{IntentID: "pi_1"}

	mock.ExpectExec(regexp.QuoteMeta("payment_completed_at IS NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.CompletePayment(context.Background(), o), ErrVersionConflict)
}

func TestActiveRanges(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.Add(8 * time.Hour)}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time, end_time FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).
			AddRow(start, start.Add(time.Hour)))

	ranges, err := repo.ActiveRanges(context.Background(), uuid.New(), window, start.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].Start.Equal(start))
}
