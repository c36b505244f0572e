package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// Service аналитика мастера
type Service struct {
	bookingRepo BookingRepository
	clientRepo  ClientRepository
	txRepo      TransactionRepository
	logger      Logger
}

// NewService создает сервис аналитики
func NewService(bookingRepo BookingRepository, clientRepo ClientRepository, txRepo TransactionRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		clientRepo:  clientRepo,
		txRepo:      txRepo,
		logger:      logger,
	}
}

// GetMasterAnalytics собирает статистику бронирований, баланс и распределение клиентов по надежности
func (s *Service) GetMasterAnalytics(ctx context.Context, masterID int64) (*AnalyticsResponse, error) {
	s.logger.Info("GetMasterAnalytics: master=%d", masterID)

	stats, err := s.bookingRepo.GetMasterStats(ctx, masterID)
	if err != nil {
		s.logger.Error("GetMasterAnalytics: failed to get stats for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetMasterAnalytics - stats: %v", ErrInternal, err)
	}

	balance, err := s.txRepo.GetMasterBalance(ctx, masterID)
	if err != nil {
		s.logger.Error("GetMasterAnalytics: failed to get balance for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetMasterAnalytics - balance: %v", ErrInternal, err)
	}

	distribution, err := s.reliabilityDistribution(ctx, masterID)
	if err != nil {
		return nil, err
	}

	return &AnalyticsResponse{
		MasterID:          masterID,
		TotalBookings:     stats.Total,
		CompletedBookings: stats.Completed,
		NoShows:           stats.NoShows,
		Cancelled:         stats.Cancelled,
		ActiveBookings:    stats.Active,
		NoShowRate:        math.Round(stats.NoShowRate()*10) / 10,
		ProtectedAmount:   money.Float(stats.ProtectedAmount),
		AverageDeposit:    money.Float(stats.AverageDeposit),
		WalletBalance:     money.Float(balance),
		Clients:           distribution,
	}, nil
}

func (s *Service) reliabilityDistribution(ctx context.Context, masterID int64) (ReliabilityDistribution, error) {
	var dist ReliabilityDistribution

	ids, err := s.bookingRepo.GetClientIDsByMasterID(ctx, masterID)
	if err != nil {
		s.logger.Error("reliabilityDistribution: failed to get client ids: %v", err)
		return dist, fmt.Errorf("%w: reliabilityDistribution - client ids: %v", ErrInternal, err)
	}
	if len(ids) == 0 {
		return dist, nil
	}

	clients, err := s.clientRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("reliabilityDistribution: failed to get clients: %v", err)
		return dist, fmt.Errorf("%w: reliabilityDistribution - clients: %v", ErrInternal, err)
	}

	for _, c := range clients {
		switch c.Reliability {
		case domain.ReliabilityReliable:
			dist.Reliable++
		case domain.ReliabilityNeedsProtection:
			dist.NeedsProtection++
		default:
			dist.New++
		}
	}
	return dist, nil
}
