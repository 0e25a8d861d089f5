package business

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

var businessColumns = []string{
	"id",
	"owner_account_id",
	"sign",
	"name",
	"currency",
	"time_zone",
	"location",
	"latitude",
	"longitude",
	"is_active",
	"version",
	"created_at",
	"updated_at",
}

var offeringColumns = []string{
	"id",
	"business_id",
	"type",
	"price",
	"duration_seconds",
	"title",
	"description",
	"image",
	"idx",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бизнесов, их услуг и расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бизнес вместе с услугами и расписанием
// Вызывать внутри транзакции: выполняется несколько запросов
func (r *Repository) Create(ctx context.Context, b *domain.Business) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("businesses").
		Columns(
			"id",
			"owner_account_id",
			"sign",
			"name",
			"currency",
			"time_zone",
			"location",
			"latitude",
			"longitude",
			"is_active",
			"version",
		).
		Values(
			b.ID,
			b.OwnerAccountID,
			b.Sign,
			b.Name,
			b.Currency,
			b.TimeZone,
			b.Location,
			b.Latitude,
			b.Longitude,
			b.IsActive,
			1,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrSignTaken
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.SaveOfferings(ctx, b.ID, b.Offerings); err != nil {
		return err
	}

	return r.ReplaceSchedule(ctx, b.ID, b.Schedule)
}

// GetByID получает бизнес с живыми услугами и расписанием
// Внутри транзакции строка бизнеса блокируется (FOR UPDATE), что сериализует
// конкурирующие операции над одним бизнесом
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetBySign получает бизнес по sign
func (r *Repository) GetBySign(ctx context.Context, sign string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"sign": sign}, "GetBySign")
}

// ListByOwner бизнесы аккаунта (без услуг и расписания)
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(squirrel.Eq{"owner_account_id": ownerID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan business: %v", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	if b.Offerings, err = r.listOfferings(ctx, b.ID); err != nil {
		return nil, err
	}
	if b.Schedule, err = r.GetSchedule(ctx, b.ID); err != nil {
		return nil, err
	}

	return b, nil
}

// Update обновляет поля бизнеса с проверкой версии
// При успехе увеличивает b.Version
func (r *Repository) Update(ctx context.Context, b *domain.Business) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("sign", b.Sign).
		Set("name", b.Name).
		Set("time_zone", b.TimeZone).
		Set("location", b.Location).
		Set("latitude", b.Latitude).
		Set("longitude", b.Longitude).
		Set("is_active", b.IsActive).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID, "version": b.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrSignTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	b.Version++
	return nil
}

// SignExists проверяет, занят ли sign другим бизнесом
func (r *Repository) SignExists(ctx context.Context, sign string, exclude uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("businesses").
		Where(squirrel.Eq{"sign": sign}).
		Where(squirrel.NotEq{"id": exclude}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SignExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: SignExists - execute query: %v", ErrExecQuery, err)
	}
	return true, nil
}

// GetOffering получает живую услугу бизнеса
func (r *Repository) GetOffering(ctx context.Context, businessID, offeringID uuid.UUID) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offeringColumns...).
		From("offerings").
		Where(squirrel.Eq{"id": offeringID, "business_id": businessID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - scan offering: %v", ErrScanRow, err)
	}
	return o, nil
}

// SaveOfferings вставляет или обновляет услуги (upsert по id)
// Удалённые услуги сохраняются с deleted_at, физически строки не удаляются
func (r *Repository) SaveOfferings(ctx context.Context, businessID uuid.UUID, offerings []domain.Offering) error {
	if len(offerings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("offerings").
		Columns(
			"id",
			"business_id",
			"type",
			"price",
			"duration_seconds",
			"title",
			"description",
			"image",
			"idx",
			"deleted_at",
		)

	for _, o := range offerings {
		builder = builder.Values(
			o.ID,
			businessID,
			o.Type,
			o.Price,
			int64(o.Duration/time.Second),
			o.Title,
			o.Description,
			o.Image,
			o.Index,
			o.DeletedAt,
		)
	}

	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			duration_seconds = EXCLUDED.duration_seconds,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			idx = EXCLUDED.idx,
			deleted_at = EXCLUDED.deleted_at,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveOfferings - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveOfferings - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// ListAllOfferings все услуги бизнеса, включая удалённые
func (r *Repository) ListAllOfferings(ctx context.Context, businessID uuid.UUID) ([]domain.Offering, error) {
	return r.queryOfferings(ctx, businessID, false, "ListAllOfferings")
}

func (r *Repository) listOfferings(ctx context.Context, businessID uuid.UUID) ([]domain.Offering, error) {
	return r.queryOfferings(ctx, businessID, true, "listOfferings")
}

func (r *Repository) queryOfferings(ctx context.Context, businessID uuid.UUID, liveOnly bool, op string) ([]domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(offeringColumns...).
		From("offerings").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("idx", "created_at")
	if liveOnly {
		builder = builder.Where("deleted_at IS NULL")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.Offering, 0)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan offering: %v", ErrScanRow, op, err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return result, nil
}

// GetSchedule недельное расписание бизнеса
func (r *Repository) GetSchedule(ctx context.Context, businessID uuid.UUID) ([]domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From("schedules").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ScheduleEntry, 0)
	for rows.Next() {
		var (
			e   domain.ScheduleEntry
			day int
		)
		if err := rows.Scan(&day, &e.StartTime, &e.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetSchedule - scan entry: %v", ErrScanRow, err)
		}
		e.DayOfWeek = time.Weekday(day)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// ReplaceSchedule полностью заменяет недельное расписание
// Вызывать внутри транзакции
func (r *Repository) ReplaceSchedule(ctx context.Context, businessID uuid.UUID, entries []domain.ScheduleEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("schedules").Columns("business_id", "day_of_week", "start_time", "end_time")
	for _, e := range entries {
		builder = builder.Values(businessID, int(e.DayOfWeek), e.StartTime, e.EndTime)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row scanner) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.ID,
		&b.OwnerAccountID,
		&b.Sign,
		&b.Name,
		&b.Currency,
		&b.TimeZone,
		&b.Location,
		&b.Latitude,
		&b.Longitude,
		&b.IsActive,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanOffering(row scanner) (*domain.Offering, error) {
	var (
		o         domain.Offering
		seconds   int64
		image     sql.NullString
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&o.ID,
		&o.BusinessID,
		&o.Type,
		&o.Price,
		&seconds,
		&o.Title,
		&o.Description,
		&image,
		&o.Index,
		&deletedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Duration = time.Duration(seconds) * time.Second
	if image.Valid {
		o.Image = &image.String
	}
	if deletedAt.Valid {
		o.DeletedAt = &deletedAt.Time
	}
	return &o, nil
}
