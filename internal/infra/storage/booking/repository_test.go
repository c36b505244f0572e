package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addBookingRow(rows *sqlmock.Rows, id int64, status string) *sqlmock.Rows {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, int64(1), int64(2), int64(3),
		date, "10:00:00", 90, status,
		"Balayage", "100.00", "42.25", "new", true,
		"pi_123", true, 50,
		date.Add(-14*time.Hour), nil, nil, nil,
		now, now,
	)
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(addBookingRow(bookingRows(), 7, "confirmed"))

		b, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, int64(7), b.ID)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.Equal(t, "10:00", b.StartTime.String())
		assert.True(t, b.DepositAmount.Equal(decimal.RequireFromString("42.25")))
		assert.Equal(t, domain.ReliabilityNew, b.ClientReliability)
		assert.True(t, b.HasPaymentHold())
		assert.Nil(t, b.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(int64(404)).
			WillReturnRows(bookingRows())

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("Locks row inside transaction", func(t *testing.T) {
		repo, db, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1 FOR UPDATE")).
			WithArgs(int64(7)).
			WillReturnRows(addBookingRow(bookingRows(), 7, "pending"))

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{
		MasterID:          1,
		ClientID:          2,
		ServiceID:         3,
		BookingDate:       time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:         "10:00",
		DurationMinutes:   90,
		Status:            domain.StatusPending,
		ServiceName:       "Balayage",
		ServicePrice:      decimal.NewFromInt(100),
		DepositAmount:     decimal.RequireFromString("42.25"),
		ClientReliability: domain.ReliabilityNew,
		RiskScore:         50,
		Notes:             ptr.Ptr("first visit"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByMasterWithFilter(t *testing.T) {
	t.Run("Single day inside transaction is locked and ordered by time", func(t *testing.T) {
		repo, db, mock := newRepo(t)
		day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(
			"FROM bookings WHERE master_id = $1 AND booking_date >= $2 AND booking_date <= $3 AND status NOT IN ($4,$5,$6,$7) ORDER BY start_time ASC FOR UPDATE",
		)).
			WithArgs(int64(1), day, day, "completed", "no-show", "cancelled", "rescheduled").
			WillReturnRows(addBookingRow(addBookingRow(bookingRows(), 1, "confirmed"), 2, "pending"))

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		bookings, err := repo.GetByMasterWithFilter(dbmetrics.WithTx(context.Background(), tx), domain.MasterBookingsFilter{
			MasterID:  1,
			StartDate: &day,
			EndDate:   &day,
		})

		require.NoError(t, err)
		assert.Len(t, bookings, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Status filter", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		status := domain.StatusNoShow

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE master_id = $1 AND status = $2 ORDER BY booking_date DESC, start_time DESC LIMIT 20")).
			WithArgs(int64(1), "no-show").
			WillReturnRows(bookingRows())

		bookings, err := repo.GetByMasterWithFilter(context.Background(), domain.MasterBookingsFilter{
			MasterID: 1,
			Status:   &status,
			Limit:    20,
		})

		require.NoError(t, err)
		assert.Empty(t, bookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetMasterStats(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(AVG(deposit_amount) FILTER (WHERE status <> 'cancelled'), 0) FROM bookings WHERE master_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed", "no_shows", "cancelled", "active", "protected", "avg"}).
			AddRow(10, 6, 2, 1, 1, "315.50", "35.0555555555555556"))

	stats, err := repo.GetMasterStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 2, stats.NoShows)
	assert.Equal(t, "315.50", stats.ProtectedAmount.StringFixed(2))
	// 315.50 / 9 неотмененных
	assert.Equal(t, "35.06", stats.AverageDeposit.StringFixed(2))
	assert.InDelta(t, 25.0, stats.NoShowRate(), 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AttachPaymentHold(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_intent_id = $1, payment_authorized = $2, status = $3")).
			WithArgs("pi_1", true, "confirmed", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AttachPaymentHold(context.Background(), 5, ptr.Ptr("pi_1"), true, domain.StatusConfirmed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AttachPaymentHold(context.Background(), 5, nil, false, domain.StatusPending)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
