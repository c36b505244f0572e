package transaction

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

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions (booking_id,master_id,client_id,type,amount,external_id,description)")).
		WithArgs(int64(9), int64(1), nil, "wallet_credit", "25", nil, "no-show compensation").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(100), now))

	tx, err := repo.Create(context.Background(), &domain.Transaction{
		BookingID: ptr.Ptr(int64(9)),
		MasterID:  ptr.Ptr(int64(1)),
		Type:      domain.TransactionWalletCredit,
		Amount:    decimal.NewFromInt(25),
		Desc:      "no-show compensation",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMasterBalance(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE master_id = $1 AND type IN ($2,$3)")).
		WithArgs(int64(1), "wallet_credit", "payout").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("62.50"))

	balance, err := repo.GetMasterBalance(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "62.50", balance.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByMasterID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE master_id = $1 ORDER BY created_at DESC, id DESC LIMIT 50")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), nil, int64(1), nil, "payout", "-62.50", "tr_1", "weekly payout", now).
			AddRow(int64(1), int64(9), int64(1), nil, "wallet_credit", "62.50", nil, "no-show compensation", now))

	transactions, err := repo.GetByMasterID(context.Background(), 1, 50)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, domain.TransactionPayout, transactions[0].Type)
	assert.True(t, transactions[0].Amount.IsNegative())
	assert.Nil(t, transactions[0].BookingID)
	assert.True(t, transactions[1].AffectsMasterWallet())
}
