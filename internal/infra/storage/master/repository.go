package master

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/psqlbuilder"
)

const (
	table = "masters"

	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"email",
	"password_hash",
	"name",
	"phone",
	"specialty",
	"bio",
	"photo_url",
	"location",
	"booking_slug",
	"stripe_connect_id",
	"telegram_chat_id",
	"reschedule_deadline_hours",
	"workday_start",
	"workday_end",
	"slot_step_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет нового мастера
func (r *Repository) Create(ctx context.Context, m *domain.Master) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"email",
			"password_hash",
			"name",
			"phone",
			"specialty",
			"bio",
			"photo_url",
			"location",
			"booking_slug",
			"reschedule_deadline_hours",
			"workday_start",
			"workday_end",
			"slot_step_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			m.Email,
			m.PasswordHash,
			m.Name,
			m.Phone,
			m.Specialty,
			m.Bio,
			m.PhotoURL,
			m.Location,
			m.BookingSlug,
			m.Settings.RescheduleDeadlineHours,
			m.Settings.WorkdayStart,
			m.Settings.WorkdayEnd,
			m.Settings.SlotStepMinutes,
			m.Settings.MinBookingNoticeMinutes,
			m.Settings.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return m, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Master, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает мастера по email (для входа)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Master, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// GetBySlug получает мастера по публичному slug страницы бронирования
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Master, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"booking_slug": slug})
}

// GetAll получает всех мастеров (для еженедельных выплат)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	masters := make([]*domain.Master, 0)
	for rows.Next() {
		m, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		masters = append(masters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return masters, nil
}

// UpdateProfile обновляет профиль мастера
func (r *Repository) UpdateProfile(ctx context.Context, m *domain.Master) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", m.Name).
		Set("phone", m.Phone).
		Set("specialty", m.Specialty).
		Set("bio", m.Bio).
		Set("photo_url", m.PhotoURL).
		Set("location", m.Location).
		Set("stripe_connect_id", m.StripeConnectID).
		Set("telegram_chat_id", m.TelegramChatID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateProfile", query, args)
}

// UpdateSettings обновляет настройки бронирования мастера
func (r *Repository) UpdateSettings(ctx context.Context, masterID int64, s domain.BookingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("reschedule_deadline_hours", s.RescheduleDeadlineHours).
		Set("workday_start", s.WorkdayStart).
		Set("workday_end", s.WorkdayEnd).
		Set("slot_step_minutes", s.SlotStepMinutes).
		Set("min_booking_notice_minutes", s.MinBookingNoticeMinutes).
		Set("advance_booking_days", s.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": masterID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateSettings", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	m, err := scanMaster(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan master: %v", ErrScanRow, op, err)
	}

	return m, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrMasterNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMaster(row rowScanner) (*domain.Master, error) {
	var m domain.Master
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.PasswordHash,
		&m.Name,
		&m.Phone,
		&m.Specialty,
		&m.Bio,
		&m.PhotoURL,
		&m.Location,
		&m.BookingSlug,
		&m.StripeConnectID,
		&m.TelegramChatID,
		&m.Settings.RescheduleDeadlineHours,
		&m.Settings.WorkdayStart,
		&m.Settings.WorkdayEnd,
		&m.Settings.SlotStepMinutes,
		&m.Settings.MinBookingNoticeMinutes,
		&m.Settings.AdvanceBookingDays,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
