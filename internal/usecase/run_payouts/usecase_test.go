package run_payouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/ptr"
)

type mockMasterRepo struct{ mock.Mock }

func (m *mockMasterRepo) GetAll(ctx context.Context) ([]*domain.Master, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Master), args.Error(1)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, t)
	return t, args.Error(0)
}

func (m *mockTransactionRepo) GetMasterBalance(ctx context.Context, masterID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, masterID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) Payout(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	args := m.Called(ctx, accountID, amount, reference)
	return args.String(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyPayout(ctx context.Context, master *domain.Master, amount decimal.Decimal) {
	m.Called(ctx, master, amount)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func ofType(tt domain.TransactionType, amount string) interface{} {
	return mock.MatchedBy(func(t *domain.Transaction) bool {
		return t.Type == tt && t.Amount.Equal(decimal.RequireFromString(amount))
	})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	masters := new(mockMasterRepo)
	transactions := new(mockTransactionRepo)
	gateway := new(mockPayments)
	notifier := new(mockNotifier)

	rich := &domain.Master{ID: 1, StripeConnectID: ptr.Ptr("acct_1")}
	poor := &domain.Master{ID: 2, StripeConnectID: ptr.Ptr("acct_2")}
	noAccount := &domain.Master{ID: 3}
	broken := &domain.Master{ID: 4, StripeConnectID: ptr.Ptr("acct_4")}
	masters.On("GetAll", ctx).Return([]*domain.Master{rich, poor, noAccount, broken}, nil)

	transactions.On("GetMasterBalance", mock.Anything, int64(1)).Return(decimal.RequireFromString("75.50"), nil)
	transactions.On("GetMasterBalance", mock.Anything, int64(2)).Return(decimal.RequireFromString("49.99"), nil)
	transactions.On("GetMasterBalance", mock.Anything, int64(4)).Return(decimal.NewFromInt(60), nil)

	transactions.On("Create", mock.Anything, ofType(domain.TransactionPayout, "-75.50")).Return(nil).Once()
	transactions.On("Create", mock.Anything, ofType(domain.TransactionPayout, "-60")).Return(nil).Once()
	transactions.On("Create", mock.Anything, ofType(domain.TransactionWalletCredit, "60")).Return(nil).Once()

	gateway.On("Payout", mock.Anything, "acct_1", mock.Anything, "payout-1-2026-10-17").Return("tr_1", nil)
	gateway.On("Payout", mock.Anything, "acct_4", mock.Anything, "payout-4-2026-10-17").Return("", errors.New("account restricted"))
	notifier.On("NotifyPayout", mock.Anything, rich, mock.Anything).Return()

	uc := NewUseCase(masters, transactions, gateway, notifier, inlineTx{}, decimal.NewFromInt(50), logger.NewNop())
	uc.timeProvider = fixedTime{t: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(ctx)
	require.NoError(t, err)

	require.Len(t, resp.Paid, 1)
	assert.Equal(t, int64(1), resp.Paid[0].MasterID)
	assert.Equal(t, "tr_1", resp.Paid[0].TransferID)
	assert.Equal(t, "75.50", resp.Total.StringFixed(2))
	assert.Equal(t, 2, resp.Skipped)
	assert.Equal(t, 1, resp.Failed)

	transactions.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "NotifyPayout", 1)
	transactions.AssertNotCalled(t, "GetMasterBalance", mock.Anything, int64(3))
}

func TestUseCase_Execute_ListFailure(t *testing.T) {
	masters := new(mockMasterRepo)
	masters.On("GetAll", mock.Anything).Return(nil, errors.New("db down"))

	uc := NewUseCase(masters, new(mockTransactionRepo), new(mockPayments), new(mockNotifier), inlineTx{}, decimal.NewFromInt(50), logger.NewNop())
	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
