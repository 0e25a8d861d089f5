package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerr"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"business_id",
	"offering_id",
	"customer_id",
	"price",
	"title",
	"description",
	"image",
	"currency",
	"start_time",
	"end_time",
	"status",
	"note",
	"payment_requested",
	"payment_intent_id",
	"payment_base",
	"payment_tip",
	"payment_fee",
	"payment_total",
	"payment_created_at",
	"payment_completed_at",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий заказов
// Payment хранится в колонках payment_* той же строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый заказ
// Пересечение с другим активным заказом отсекается exclusion constraint и возвращается как ErrSlotTaken
func (r *Repository) Create(ctx context.Context, o *domain.Order) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"business_id",
			"offering_id",
			"customer_id",
			"price",
			"title",
			"description",
			"image",
			"currency",
			"start_time",
			"end_time",
			"status",
			"note",
			"payment_requested",
			"version",
		).
		Values(
			o.ID,
			o.BusinessID,
			o.OfferingID,
			o.CustomerID,
			o.Price,
			o.Title,
			o.Description,
			o.Image,
			o.Currency,
			o.Range.Start,
			o.Range.End,
			o.Status,
			o.Note,
			o.PaymentRequested,
			1,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return classify(err, "Create - execute insert")
	}
	return nil
}

// GetByID получает заказ по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}
	return o, nil
}

// List заказы бизнеса с фильтрацией по статусу и периоду (по времени начала)
func (r *Repository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"business_id": filter.BusinessID}).
		OrderBy("start_time DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.To})
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

	result := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan order: %v", ErrScanRow, err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// ActiveRanges интервалы неотклонённых заказов бизнеса, пересекающие window
// и ещё не закончившиеся к моменту now
func (r *Repository) ActiveRanges(ctx context.Context, businessID uuid.UUID, window domain.TimeRange, now time.Time) ([]domain.TimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("orders").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.NotEq{"status": domain.OrderStatusDeclined}).
		Where(squirrel.Lt{"start_time": window.End}).
		Where(squirrel.Gt{"end_time": window.Start}).
		Where(squirrel.Gt{"end_time": now}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ActiveRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ActiveRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.TimeRange, 0)
	for rows.Next() {
		var tr domain.TimeRange
		if err := rows.Scan(&tr.Start, &tr.End); err != nil {
			return nil, fmt.Errorf("%w: ActiveRanges - scan row: %v", ErrScanRow, err)
		}
		result = append(result, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ActiveRanges - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Update сохраняет статус, цену и платёж заказа с проверкой версии
// При успехе увеличивает o.Version
func (r *Repository) Update(ctx context.Context, o *domain.Order) error {
	builder := psqlbuilder.Update("orders").
		Where(squirrel.Eq{"id": o.ID, "version": o.Version})

	return r.update(ctx, o, builder, "Update")
}

// CompletePayment сохраняет результат сверки платежа
// Дополнительно к версии требует payment_completed_at IS NULL, чтобы повторная доставка не записалась
func (r *Repository) CompletePayment(ctx context.Context, o *domain.Order) error {
	builder := psqlbuilder.Update("orders").
		Where(squirrel.Eq{"id": o.ID, "version": o.Version}).
		Where("payment_completed_at IS NULL")

	return r.update(ctx, o, builder, "CompletePayment")
}

func (r *Repository) update(ctx context.Context, o *domain.Order, builder squirrel.UpdateBuilder, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p := paymentColumns(o.Payment)

	query, args, err := builder.
		Set("status", o.Status).
		Set("price", o.Price).
		Set("payment_requested", o.PaymentRequested).
		Set("payment_intent_id", p.intentID).
		Set("payment_base", p.base).
		Set("payment_tip", p.tip).
		Set("payment_fee", p.fee).
		Set("payment_total", p.total).
		Set("payment_created_at", p.createdAt).
		Set("payment_completed_at", p.completedAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, op+" - execute update")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	o.Version++
	return nil
}

// CompletedPayments сверенные платежи бизнеса для расчёта кошелька
func (r *Repository) CompletedPayments(ctx context.Context, businessID uuid.UUID) ([]domain.CompletedPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "payment_total", "payment_completed_at").
		From("orders").
		Where(squirrel.Eq{"business_id": businessID}).
		Where("payment_completed_at IS NOT NULL").
		OrderBy("payment_completed_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompletedPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompletedPayments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CompletedPayment, 0)
	for rows.Next() {
		var p domain.CompletedPayment
		if err := rows.Scan(&p.OrderID, &p.Title, &p.Total, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("%w: CompletedPayments - scan row: %v", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CompletedPayments - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// CountCompleted количество выполненных заказов бизнеса
func (r *Repository) CountCompleted(ctx context.Context, businessID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"business_id": businessID, "status": domain.OrderStatusCompleted}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCompleted - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompleted - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

func classify(err error, op string) error {
	switch {
	case pgerr.IsExclusionViolation(err):
		return ErrSlotTaken
	case pgerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

type paymentRow struct {
	intentID    *string
	base        *int64
	tip         *int64
	fee         *int64
	total       *int64
	createdAt   *time.Time
	completedAt *time.Time
}

func paymentColumns(p *domain.Payment) paymentRow {
	if p == nil {
		return paymentRow{}
	}
	return paymentRow{
		intentID:    &p.IntentID,
		base:        &p.Base,
		tip:         &p.Tip,
		fee:         &p.Fee,
		total:       &p.Total,
		createdAt:   &p.CreatedAt,
		completedAt: p.CompletedAt,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		o           domain.Order
		image       sql.NullString
		note        sql.NullString
		intentID    sql.NullString
		base        sql.NullInt64
		tip         sql.NullInt64
		fee         sql.NullInt64
		total       sql.NullInt64
		paymentAt   sql.NullTime
		completedAt sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.BusinessID,
		&o.OfferingID,
		&o.CustomerID,
		&o.Price,
		&o.Title,
		&o.Description,
		&image,
		&o.Currency,
		&o.Range.Start,
		&o.Range.End,
		&o.Status,
		&note,
		&o.PaymentRequested,
		&intentID,
		&base,
		&tip,
		&fee,
		&total,
		&paymentAt,
		&completedAt,
		&o.Version,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		o.Image = &image.String
	}
	if note.Valid {
		o.Note = &note.String
	}
	if intentID.Valid {
		o.Payment = &domain.Payment{
			IntentID:  intentID.String,
			Base:      base.Int64,
			Tip:       tip.Int64,
			Fee:       fee.Int64,
			Total:     total.Int64,
			CreatedAt: paymentAt.Time,
		}
		if completedAt.Valid {
			o.Payment.CompletedAt = &completedAt.Time
		}
	}

	return &o, nil
}
