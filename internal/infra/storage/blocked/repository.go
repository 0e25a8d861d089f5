package blocked

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий закрытых периодов бизнеса
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет закрытый период
func (r *Repository) Create(ctx context.Context, p *domain.BlockedPeriod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns("id", "business_id", "title", "start_time", "end_time").
		Values(p.ID, p.BusinessID, p.Title, p.Range.Start, p.Range.End).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// List периоды бизнеса. Если window задан - только пересекающиеся с ним
func (r *Repository) List(ctx context.Context, businessID uuid.UUID, window *domain.TimeRange) ([]domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "business_id", "title", "start_time", "end_time", "created_at", "updated_at").
		From("blocked_periods").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("start_time")

	if window != nil {
		builder = builder.
			Where(squirrel.Lt{"start_time": window.End}).
			Where(squirrel.Gt{"end_time": window.Start})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BlockedPeriod, 0)
	for rows.Next() {
		var p domain.BlockedPeriod
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.Title, &p.Range.Start, &p.Range.End, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Delete удаляет период бизнеса
func (r *Repository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedNotFound
	}
	return nil
}
