package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/payments"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/metrics"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

type mockBookingRepo struct{ mock.Mock }

// Create возвращает копию переданной записи с ID из ожидания
func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	created := *booking
	created.ID = args.Get(0).(int64)
	return &created, nil
}

func (m *mockBookingRepo) GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) AttachPaymentHold(ctx context.Context, id int64, paymentIntentID *string, authorized bool, status domain.BookingStatus) error {
	args := m.Called(ctx, id, paymentIntentID, authorized, status)
	return args.Error(0)
}

type mockMasterRepo struct{ mock.Mock }

func (m *mockMasterRepo) GetByID(ctx context.Context, id int64) (*domain.Master, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Master), args.Error(1)
}

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOffering), args.Error(1)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// копия, чтобы инкремент счетчиков не влиял на ожидания
	c := *args.Get(0).(*domain.Client)
	return &c, args.Error(1)
}

func (m *mockClientRepo) UpdateStats(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, t)
	return t, args.Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, master *domain.Master, c *domain.Client) {
	m.Called(ctx, b, master, c)
}

type failingGateway struct{}

func (failingGateway) AuthorizeHold(context.Context, payments.HoldRequest) (*payments.Hold, error) {
	return nil, payments.ErrProvider
}

func (failingGateway) ReleaseHold(context.Context, string) error { return nil }

// inlineTx выполняет функцию без реальной транзакции
type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	bookings     *mockBookingRepo
	masters      *mockMasterRepo
	offerings    *mockOfferingRepo
	clients      *mockClientRepo
	transactions *mockTransactionRepo
	notifier     *mockNotifier
	deps         Deps
	now          time.Time
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(mockBookingRepo),
		masters:      new(mockMasterRepo),
		offerings:    new(mockOfferingRepo),
		clients:      new(mockClientRepo),
		transactions: new(mockTransactionRepo),
		notifier:     new(mockNotifier),
		now:          time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}
	f.deps = Deps{
		BookingRepo:     f.bookings,
		MasterRepo:      f.masters,
		OfferingRepo:    f.offerings,
		ClientRepo:      f.clients,
		TransactionRepo: f.transactions,
		Calculator:      deposit.MustNewCalculator(deposit.DefaultPolicy()),
		Payments:        payments.NewMockGateway(logger.NewNop()),
		Notifier:        f.notifier,
		Metrics:         (*metrics.Metrics)(nil),
		TxManager:       inlineTx{},
		PeakWindows:     []domain.PeakWindow{{Start: "11:00", End: "12:00"}},
		Location:        time.UTC,
		Logger:          logger.NewNop(),
	}

	f.masters.On("GetByID", mock.Anything, int64(1)).Return(&domain.Master{
		ID: 1, Name: "Anna", Settings: domain.DefaultBookingSettings(),
	}, nil)
	f.offerings.On("GetByID", mock.Anything, int64(5)).Return(&domain.ServiceOffering{
		ID: 5, MasterID: 1, Name: "Balayage", DurationMinutes: 90, Price: decimal.NewFromInt(100), Active: true,
	}, nil)
	f.clients.On("GetByID", mock.Anything, int64(3)).Return(&domain.Client{
		ID: 3, Email: "kate@mail.test", Reliability: domain.ReliabilityNew,
	}, nil)
	return f
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.deps)
	uc.timeProvider = fixedTime{t: f.now}
	return uc
}

func request(start string) *Request {
	return &Request{
		MasterID:  1,
		ServiceID: 5,
		ClientID:  3,
		Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.bookings.On("GetByMasterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{StartTime: "08:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	f.bookings.On("AttachPaymentHold", mock.Anything, int64(42), mock.Anything, true, domain.StatusConfirmed).Return(nil)
	f.clients.On("UpdateStats", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.ID == 3 && c.TotalBookings == 1
	})).Return(nil)
	f.transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Type == domain.TransactionTimeholdAuth && *tx.BookingID == 42 && tx.Amount.Equal(decimal.NewFromInt(39))
	})).Return(nil)
	f.notifier.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	resp, err := f.useCase().Execute(ctx, request("10:00"))
	require.NoError(t, err)

	// 100 * 32.5% * 1.2 = 39.00
	b := resp.Booking
	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.True(t, b.PaymentAuthorized)
	assert.True(t, b.DepositAmount.Equal(decimal.NewFromInt(39)))
	assert.Equal(t, domain.ReliabilityNew, b.ClientReliability)
	assert.False(t, b.IsPeakSlot)
	assert.Equal(t, 50, b.RiskScore)
	assert.Equal(t, "Balayage", b.ServiceName)
	assert.Equal(t, time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC), b.RescheduleDeadline)
	require.NotNil(t, resp.ClientSecret)
	assert.Equal(t, deposit.TierMedium, resp.Quote.Tier)

	f.clients.AssertExpectations(t)
	f.transactions.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_Execute_PaymentFailureLeavesPending(t *testing.T) {
	f := newFixture()
	f.deps.Payments = failingGateway{}
	f.bookings.On("GetByMasterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(int64(43), nil)
	f.clients.On("UpdateStats", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	resp, err := f.useCase().Execute(context.Background(), request("11:00"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.False(t, resp.Booking.PaymentAuthorized)
	assert.Nil(t, resp.ClientSecret)
	// пиковый слот: 39 * 1.15 = 44.85
	assert.True(t, resp.Booking.IsPeakSlot)
	assert.Equal(t, "44.85", resp.Booking.DepositAmount.StringFixed(2))
	f.bookings.AssertNotCalled(t, "AttachPaymentHold", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Overlapping booking", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByMasterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
			{StartTime: "10:30", DurationMinutes: 30, Status: domain.StatusPending},
		}, nil)

		_, err := f.useCase().Execute(ctx, request("10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("New clients only", func(t *testing.T) {
		f := newFixture()
		f.offerings.ExpectedCalls = nil
		f.offerings.On("GetByID", mock.Anything, int64(5)).Return(&domain.ServiceOffering{
			ID: 5, MasterID: 1, DurationMinutes: 60, Price: decimal.NewFromInt(30), Active: true, NewClientsOnly: true,
		}, nil)
		f.clients.ExpectedCalls = nil
		f.clients.On("GetByID", mock.Anything, int64(3)).Return(&domain.Client{ID: 3, CompletedBookings: 2}, nil)

		_, err := f.useCase().Execute(ctx, request("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotAvailable)
	})

	t.Run("Outside working hours", func(t *testing.T) {
		f := newFixture()
		_, err := f.useCase().Execute(ctx, request("17:00"))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("Too late to book", func(t *testing.T) {
		f := newFixture()
		f.now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
		_, err := f.useCase().Execute(ctx, request("10:00"))
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("Date in the past", func(t *testing.T) {
		f := newFixture()
		f.now = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
		_, err := f.useCase().Execute(ctx, request("10:00"))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Invalid start time", func(t *testing.T) {
		f := newFixture()
		_, err := f.useCase().Execute(ctx, request("25:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Repository failure", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByMasterWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, errors.New("db down"))

		_, err := f.useCase().Execute(ctx, request("10:00"))
		assert.ErrorIs(t, err, ErrInternal)
	})
}
