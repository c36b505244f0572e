package quote_deposit

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	offeringRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/ptr"
)

type mockOfferingRepo struct {
	mock.Mock
}

func (m *mockOfferingRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOffering), args.Error(1)
}

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncDepositQuote(tier, reliability string) {
	m.Called(tier, reliability)
}

func newUseCase(offerings *mockOfferingRepo, clients *mockClientRepo, metrics QuoteMetrics) *UseCase {
	return NewUseCase(offerings, clients, deposit.MustNewCalculator(deposit.DefaultPolicy()), metrics, logger.NewNop())
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Raw input", func(t *testing.T) {
		metrics := new(mockMetrics)
		metrics.On("IncDepositQuote", "short", "reliable").Return()

		resp, err := newUseCase(new(mockOfferingRepo), new(mockClientRepo), metrics).Execute(ctx, &Request{
			Price:           ptr.Ptr(40.0),
			DurationMinutes: ptr.Ptr(30),
			Reliability:     ptr.Ptr("reliable"),
		})
		require.NoError(t, err)
		assert.Equal(t, 8.8, resp.Amount)
		assert.Equal(t, 27.5, resp.BasePercent)
		assert.Equal(t, 22.0, resp.FinalPercent)
		metrics.AssertExpectations(t)
	})

	t.Run("Stored client reliability and cancellations", func(t *testing.T) {
		offerings := new(mockOfferingRepo)
		offerings.On("GetByID", ctx, int64(5)).Return(&domain.ServiceOffering{ID: 5, Price: decimal.NewFromInt(100), DurationMinutes: 120}, nil)
		clients := new(mockClientRepo)
		clients.On("GetByID", ctx, int64(3)).Return(&domain.Client{ID: 3, Reliability: domain.ReliabilityNew, Cancellations: 1}, nil)

		resp, err := newUseCase(offerings, clients, nil).Execute(ctx, &Request{
			ServiceID: ptr.Ptr(int64(5)),
			ClientID:  ptr.Ptr(int64(3)),
		})
		require.NoError(t, err)
		// 32.5% * 1.2 * 1.3 = 50.7% от 100
		assert.Equal(t, 50.7, resp.Amount)
		assert.Equal(t, "new", resp.Reliability)
		assert.True(t, resp.CancellationApplied)
	})

	t.Run("Explicit flag overrides client history", func(t *testing.T) {
		offerings := new(mockOfferingRepo)
		offerings.On("GetByID", ctx, int64(5)).Return(&domain.ServiceOffering{ID: 5, Price: decimal.NewFromInt(100), DurationMinutes: 120}, nil)
		clients := new(mockClientRepo)
		clients.On("GetByID", ctx, int64(3)).Return(&domain.Client{ID: 3, Reliability: domain.ReliabilityNew, Cancellations: 1}, nil)

		resp, err := newUseCase(offerings, clients, nil).Execute(ctx, &Request{
			ServiceID:              ptr.Ptr(int64(5)),
			ClientID:               ptr.Ptr(int64(3)),
			HasCancellationHistory: ptr.Ptr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, 39.0, resp.Amount)
		assert.False(t, resp.CancellationApplied)
	})

	t.Run("Unknown service", func(t *testing.T) {
		offerings := new(mockOfferingRepo)
		offerings.On("GetByID", ctx, int64(5)).Return(nil, offeringRepo.ErrServiceNotFound)

		_, err := newUseCase(offerings, new(mockClientRepo), nil).Execute(ctx, &Request{ServiceID: ptr.Ptr(int64(5))})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("Unknown client", func(t *testing.T) {
		clients := new(mockClientRepo)
		clients.On("GetByID", ctx, int64(3)).Return(nil, clientRepo.ErrClientNotFound)

		_, err := newUseCase(new(mockOfferingRepo), clients, nil).Execute(ctx, &Request{
			Price:           ptr.Ptr(40.0),
			DurationMinutes: ptr.Ptr(30),
			ClientID:        ptr.Ptr(int64(3)),
		})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("Unknown reliability tag", func(t *testing.T) {
		_, err := newUseCase(new(mockOfferingRepo), new(mockClientRepo), nil).Execute(ctx, &Request{
			Price:           ptr.Ptr(40.0),
			DurationMinutes: ptr.Ptr(30),
			Reliability:     ptr.Ptr("vip"),
		})
		assert.ErrorIs(t, err, ErrUnknownReliability)
	})

	t.Run("Non-positive price", func(t *testing.T) {
		_, err := newUseCase(new(mockOfferingRepo), new(mockClientRepo), nil).Execute(ctx, &Request{
			Price:           ptr.Ptr(0.0),
			DurationMinutes: ptr.Ptr(30),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Nothing to quote", func(t *testing.T) {
		_, err := newUseCase(new(mockOfferingRepo), new(mockClientRepo), nil).Execute(ctx, &Request{Price: ptr.Ptr(40.0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
