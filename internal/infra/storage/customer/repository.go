package customer

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

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает клиента или обновляет имя и телефон существующего (по email)
// c.ID используется только для новой записи; в ответ подставляется id из БД
func (r *Repository) Upsert(ctx context.Context, c *domain.Customer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "email", "first_name", "last_name", "phone").
		Values(c.ID, c.Email, c.FirstName, c.LastName, c.Phone).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			updated_at = now()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "first_name", "last_name", "phone", "created_at", "updated_at").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}
	return &c, nil
}

// ListByBusiness клиенты, делавшие заказы в бизнесе, с количеством заказов
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.CustomerSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"c.id", "c.email", "c.first_name", "c.last_name", "c.phone", "c.created_at", "c.updated_at",
		"COUNT(o.id)", "MAX(o.created_at)",
	).
		From("customers c").
		Join("orders o ON o.customer_id = c.id").
		Where(squirrel.Eq{"o.business_id": businessID}).
		GroupBy("c.id").
		OrderBy("MAX(o.created_at) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CustomerSummary, 0)
	for rows.Next() {
		var s domain.CustomerSummary
		if err := rows.Scan(
			&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.Phone, &s.CreatedAt, &s.UpdatedAt,
			&s.Orders, &s.LastOrderAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}
