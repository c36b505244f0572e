package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	masterRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/master"
	offeringRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/offering"
)

// UseCase use case для получения свободных слотов мастера
type UseCase struct {
	bookingRepo  BookingRepository
	masterRepo   MasterRepository
	offeringRepo OfferingRepository
	clientRepo   ClientRepository
	calculator   DepositCalculator
	peakWindows  []domain.PeakWindow
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором заданы рабочие часы мастеров
func NewUseCase(
	bookingRepo BookingRepository,
	masterRepo MasterRepository,
	offeringRepo OfferingRepository,
	clientRepo ClientRepository,
	calculator DepositCalculator,
	peakWindows []domain.PeakWindow,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		masterRepo:   masterRepo,
		offeringRepo: offeringRepo,
		clientRepo:   clientRepo,
		calculator:   calculator,
		peakWindows:  peakWindows,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: master=%d, service=%d, date=%s",
		req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе мастеров
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем мастера
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 4. Получаем услугу и проверяем принадлежность мастеру
	service, err := uc.offeringRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.MasterID != master.ID {
		uc.logger.Warn("GetAvailableSlots: service id=%d does not belong to master id=%d", req.ServiceID, req.MasterID)
		return nil, ErrServiceNotFound
	}
	if !service.Active {
		return nil, ErrServiceInactive
	}

	// 5. Категория клиента для предварительного депозита
	reliability := domain.ReliabilityNew
	hasCancellations := false
	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				return nil, ErrClientNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		reliability = client.Reliability
		hasCancellations = client.HasCancellationHistory()
	}

	// 6. Валидация даты с учетом настроек мастера
	if err := validateDate(req.Date, now, master.Settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Генерируем сетку слотов
	timeSlots, err := generateTimeSlots(master.Settings, service.DurationMinutes, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 8. Активные бронирования мастера на эту дату
	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, domain.MasterBookingsFilter{
		MasterID:  master.ID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Свободные слоты с пиковой отметкой и депозитом
	free := freeSlots(timeSlots, service.DurationMinutes, bookings)
	slots := make([]domain.AvailableSlot, 0, len(free))
	for _, start := range free {
		isPeak := domain.IsPeakTime(uc.peakWindows, start)
		preview, err := uc.calculator.Compute(service.Price, service.DurationMinutes, reliability, deposit.Adjustments{
			IsPeakSlot:             isPeak,
			HasCancellationHistory: hasCancellations,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: deposit calculation failed for service id=%d: %v", service.ID, err)
			return nil, fmt.Errorf("%w: deposit calculation: %v", ErrInternal, err)
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: service.DurationMinutes,
			IsPeak:          isPeak,
			DepositPreview:  preview,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for master=%d, service=%d, date=%s",
		len(slots), req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		MasterID:        master.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Reliability:     reliability,
		Slots:           slots,
	}, nil
}
