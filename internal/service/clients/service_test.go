package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
)

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Client, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*domain.Client), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetClientIDsByMasterID(ctx context.Context, masterID int64) ([]int64, error) {
	args := m.Called(ctx, masterID)
	return args.Get(0).([]int64), args.Error(1)
}

func TestService_CreateOrGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates new client", func(t *testing.T) {
		repo := new(mockClientRepo)
		repo.On("GetByEmail", ctx, "kate@example.com").Return(nil, clientRepo.ErrClientNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(c *domain.Client) bool {
			return c.Reliability == domain.ReliabilityNew && c.Name == "Kate"
		})).Return(&domain.Client{ID: 3, Email: "kate@example.com", Name: "Kate", Reliability: domain.ReliabilityNew}, nil)

		resp, created, err := NewService(repo, new(mockBookingRepo), logger.NewNop()).
			CreateOrGet(ctx, &models.CreateClientRequest{Email: "Kate@example.com", Name: " Kate "})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "new", resp.Reliability)
		assert.Equal(t, 50, resp.RiskScore)
	})

	t.Run("Returns existing client", func(t *testing.T) {
		repo := new(mockClientRepo)
		repo.On("GetByEmail", ctx, "kate@example.com").
			Return(&domain.Client{ID: 3, Email: "kate@example.com", TotalBookings: 5, CompletedBookings: 5, Reliability: domain.ReliabilityReliable}, nil)

		resp, created, err := NewService(repo, new(mockBookingRepo), logger.NewNop()).
			CreateOrGet(ctx, &models.CreateClientRequest{Email: "kate@example.com", Name: "Kate"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 0, resp.RiskScore)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Concurrent insert", func(t *testing.T) {
		repo := new(mockClientRepo)
		repo.On("GetByEmail", ctx, "kate@example.com").Return(nil, clientRepo.ErrClientNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil, clientRepo.ErrAlreadyExists)
		repo.On("GetByEmail", ctx, "kate@example.com").Return(&domain.Client{ID: 3}, nil).Once()

		resp, created, err := NewService(repo, new(mockBookingRepo), logger.NewNop()).
			CreateOrGet(ctx, &models.CreateClientRequest{Email: "kate@example.com", Name: "Kate"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(3), resp.ID)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, _, err := NewService(new(mockClientRepo), new(mockBookingRepo), logger.NewNop()).
			CreateOrGet(ctx, &models.CreateClientRequest{Email: "nope", Name: "Kate"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ListByMaster(t *testing.T) {
	ctx := context.Background()

	t.Run("No clients", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		bookings.On("GetClientIDsByMasterID", ctx, int64(1)).Return([]int64{}, nil)
		repo := new(mockClientRepo)

		resp, err := NewService(repo, bookings, logger.NewNop()).ListByMaster(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Clients)
		repo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})

	t.Run("Clients of master", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		bookings.On("GetClientIDsByMasterID", ctx, int64(1)).Return([]int64{3, 4}, nil)
		repo := new(mockClientRepo)
		repo.On("GetByIDs", ctx, []int64{3, 4}).Return([]*domain.Client{{ID: 3}, {ID: 4}}, nil)

		resp, err := NewService(repo, bookings, logger.NewNop()).ListByMaster(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, resp.Clients, 2)
	})
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(mockClientRepo)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, clientRepo.ErrClientNotFound)

	_, err := NewService(repo, new(mockBookingRepo), logger.NewNop()).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
