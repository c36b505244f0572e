package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"master_id",
	"client_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"deposit_amount",
	"client_reliability",
	"is_peak_slot",
	"payment_intent_id",
	"payment_authorized",
	"risk_score",
	"reschedule_deadline",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"master_id",
			"client_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"service_price",
			"deposit_amount",
			"client_reliability",
			"is_peak_slot",
			"payment_intent_id",
			"payment_authorized",
			"risk_score",
			"reschedule_deadline",
			"notes",
		).
		Values(
			booking.MasterID,
			booking.ClientID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DepositAmount,
			booking.ClientReliability,
			booking.IsPeakSlot,
			booking.PaymentIntentID,
			booking.PaymentAuthorized,
			booking.RiskScore,
			booking.RescheduleDeadline,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByMasterWithFilter получает бронирования мастера с фильтрацией
// Поддерживает фильтрацию по периоду (StartDate, EndDate), статусу и включению неактивных бронирований
//
// Бронирования на конкретную дату внутри транзакции блокируются (FOR UPDATE):
// так create_booking сериализует проверку пересечений по дню мастера
func (r *Repository) GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"master_id": filter.MasterID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetClientIDsByMasterID получает список всех клиентов, которые когда-либо бронировали услуги мастера
func (r *Repository) GetClientIDsByMasterID(ctx context.Context, masterID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT client_id").
		From(table).
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("client_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClientIDsByMasterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientIDsByMasterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clientIDs := make([]int64, 0)
	for rows.Next() {
		var clientID int64
		if err := rows.Scan(&clientID); err != nil {
			return nil, fmt.Errorf("%w: GetClientIDsByMasterID - scan client_id: %v", ErrScanRow, err)
		}
		clientIDs = append(clientIDs, clientID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClientIDsByMasterID - rows error: %v", ErrScanRow, err)
	}

	return clientIDs, nil
}

// GetMasterStats агрегирует статистику бронирований мастера
// Защищенная сумма и средний депозит считаются по неотмененным бронированиям
func (r *Repository) GetMasterStats(ctx context.Context, masterID int64) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'no-show')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed'))",
		"COALESCE(SUM(deposit_amount) FILTER (WHERE status <> 'cancelled'), 0)",
		"COALESCE(AVG(deposit_amount) FILTER (WHERE status <> 'cancelled'), 0)",
	).
		From(table).
		Where(squirrel.Eq{"master_id": masterID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMasterStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.NoShows,
		&stats.Cancelled,
		&stats.Active,
		&stats.ProtectedAmount,
		&stats.AverageDeposit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMasterStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// AttachPaymentHold сохраняет результат авторизации платежа и новый статус
func (r *Repository) AttachPaymentHold(ctx context.Context, id int64, paymentIntentID *string, authorized bool, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("payment_intent_id", paymentIntentID).
		Set("payment_authorized", authorized).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachPaymentHold - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "AttachPaymentHold", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.MasterID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.DepositAmount,
		&booking.ClientReliability,
		&booking.IsPeakSlot,
		&booking.PaymentIntentID,
		&booking.PaymentAuthorized,
		&booking.RiskScore,
		&booking.RescheduleDeadline,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
