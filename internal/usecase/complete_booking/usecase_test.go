package complete_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/metrics"
	"github.com/m04kA/SMC-SlottaService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	b := *args.Get(0).(*domain.Booking)
	return &b, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type mockPayments struct{ mock.Mock }

func (m *mockPayments) ReleaseHold(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	bookings     *mockBookingRepo
	clients      *mockClientRepo
	transactions *mockTransactionRepo
	payments     *mockPayments
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(mockBookingRepo),
		clients:      new(mockClientRepo),
		transactions: new(mockTransactionRepo),
		payments:     new(mockPayments),
	}
	f.uc = NewUseCase(f.bookings, f.clients, f.transactions, f.payments, (*metrics.Metrics)(nil), inlineTx{}, logger.NewNop())
	return f
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		MasterID:        1,
		ClientID:        3,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Manicure",
		DepositAmount:   decimal.RequireFromString("13.20"),
		PaymentIntentID: ptr.Ptr("pi_123"),
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Completes and promotes client", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, int64(10)).Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, int64(10), domain.StatusCompleted).Return(nil)
		f.clients.On("GetByID", mock.Anything, int64(3)).Return(&domain.Client{
			ID: 3, TotalBookings: 3, CompletedBookings: 2, Reliability: domain.ReliabilityNew,
		}, nil)
		f.clients.On("UpdateStats", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
			return c.CompletedBookings == 3 && c.Reliability == domain.ReliabilityReliable
		})).Return(nil)
		f.payments.On("ReleaseHold", mock.Anything, "pi_123").Return(nil)
		f.transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TransactionTimeholdRelease && tx.Amount.Equal(decimal.RequireFromString("13.20"))
		})).Return(nil)

		resp, err := f.uc.Execute(ctx, &Request{BookingID: 10, MasterID: 1})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)
		assert.Equal(t, domain.ReliabilityReliable, resp.Reliability)
		assert.True(t, resp.HoldReleased)
		f.clients.AssertExpectations(t)
		f.transactions.AssertExpectations(t)
	})

	t.Run("Release failure does not fail completion", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, int64(10)).Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, int64(10), domain.StatusCompleted).Return(nil)
		f.clients.On("GetByID", mock.Anything, int64(3)).Return(&domain.Client{ID: 3, TotalBookings: 1}, nil)
		f.clients.On("UpdateStats", mock.Anything, mock.Anything).Return(nil)
		f.payments.On("ReleaseHold", mock.Anything, "pi_123").Return(errors.New("stripe down"))

		resp, err := f.uc.Execute(ctx, &Request{BookingID: 10, MasterID: 1})
		require.NoError(t, err)
		assert.False(t, resp.HoldReleased)
		assert.Equal(t, domain.ReliabilityNew, resp.Reliability)
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Another master", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, int64(10)).Return(confirmedBooking(), nil)

		_, err := f.uc.Execute(ctx, &Request{BookingID: 10, MasterID: 2})
		assert.ErrorIs(t, err, ErrAccessDenied)
		f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already settled", func(t *testing.T) {
		f := newFixture()
		b := confirmedBooking()
		b.Status = domain.StatusNoShow
		f.bookings.On("GetByID", mock.Anything, int64(10)).Return(b, nil)

		_, err := f.uc.Execute(ctx, &Request{BookingID: 10, MasterID: 1})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Not found", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, int64(10)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := f.uc.Execute(ctx, &Request{BookingID: 10, MasterID: 1})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
