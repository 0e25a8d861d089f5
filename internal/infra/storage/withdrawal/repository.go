package withdrawal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var columns = []string{"id", "business_id", "amount", "status", "version", "created_at", "completed_at"}

// Repository репозиторий выплат
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую выплату
func (r *Repository) Create(ctx context.Context, w *domain.Withdrawal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("withdrawals").
		Columns("id", "business_id", "amount", "status", "version").
		Values(w.ID, w.BusinessID, w.Amount, w.Status, 1).
		Suffix("RETURNING version, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.Version, &w.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает выплату. Внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("withdrawals").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scan(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan withdrawal: %v", ErrScanRow, err)
	}
	return w, nil
}

// ListByBusiness все выплаты бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Withdrawal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("withdrawals").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Withdrawal, 0)
	for rows.Next() {
		w, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan withdrawal: %v", ErrScanRow, err)
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Update сохраняет статус с проверкой версии
func (r *Repository) Update(ctx context.Context, w *domain.Withdrawal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("withdrawals").
		Set("status", w.Status).
		Set("completed_at", w.CompletedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": w.ID, "version": w.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	w.Version++
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(row scanner) (*domain.Withdrawal, error) {
	var (
		w           domain.Withdrawal
		completedAt sql.NullTime
	)
	if err := row.Scan(&w.ID, &w.BusinessID, &w.Amount, &w.Status, &w.Version, &w.CreatedAt, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		w.CompletedAt = &completedAt.Time
	}
	return &w, nil
}
