package dbmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	operation string
	err       error
}

type fakeRecorder struct {
	calls []recorded
}

func (f *fakeRecorder) ObserveQuery(operation string, _ time.Duration, err error) {
	f.calls = append(f.calls, recorded{operation: operation, err: err})
}

func TestDB_RecordsOperation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec)

	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = db.ExecContext(context.Background(), "UPDATE orders SET status = $1", "approved")
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "update", rec.calls[0].operation)
	assert.NoError(t, rec.calls[0].err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM x"))
	assert.Equal(t, "insert", operation("INSERT\nINTO x"))
}
