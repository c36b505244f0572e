package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Мастер видит только свои бронирования
func (s *Service) GetByID(ctx context.Context, id int64, masterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for master=%d", id, masterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.MasterID != masterID {
		s.logger.Warn("GetByID: access denied for master=%d to booking id=%d", masterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetClientBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMasterBookings получает бронирования мастера с фильтрацией по периоду и статусу
// Фильтр по статусу включает неактивные бронирования автоматически
func (s *Service) GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMasterBookings: fetching bookings for master=%d, status=%v, includeInactive=%t",
		req.MasterID, req.Status, req.IncludeInactive)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("GetMasterBookings: startDate is after endDate")
		return nil, ErrInvalidTimeRange
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetMasterBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByMasterWithFilter(ctx, req.ToDomainFilter(status))
	if err != nil {
		s.logger.Error("GetMasterBookings: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterBookings: fetched %d bookings for master=%d", len(bookings), req.MasterID)
	return models.FromDomainBookingList(bookings), nil
}

func parseStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, ok := domain.ParseBookingStatus(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *raw)
	}
	return &status, nil
}
