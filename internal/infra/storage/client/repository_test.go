package client

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func clientRow(id int64, reliability string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).AddRow(
		id, "anna@example.com", "Anna", nil,
		5, 3, 1, 1, reliability, "12.50", nil,
		now, now,
	)
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE email = $1")).
		WithArgs("anna@example.com").
		WillReturnRows(clientRow(3, "reliable"))

	c, err := repo.GetByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, domain.ReliabilityReliable, c.Reliability)
	assert.Equal(t, "12.50", c.WalletBalance.StringFixed(2))
	assert.True(t, c.HasCancellationHistory())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_ForUpdateInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(clientRow(3, "new"))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Client{
		Email:       "anna@example.com",
		Name:        "Anna",
		Reliability: domain.ReliabilityNew,
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRepository_GetByIDs_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)

	clients, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStats(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clients SET total_bookings = $1, completed_bookings = $2, no_shows = $3, cancellations = $4, reliability = $5, wallet_balance = $6")).
		WithArgs(4, 2, 2, 0, "needs-protection", "15", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStats(context.Background(), &domain.Client{
		ID:                3,
		TotalBookings:     4,
		CompletedBookings: 2,
		NoShows:           2,
		Reliability:       domain.ReliabilityNeedsProtection,
		WalletBalance:     decimal.NewFromInt(15),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
