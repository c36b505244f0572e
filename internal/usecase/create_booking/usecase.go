package create_booking

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
	"github.com/m04kA/SMC-SlottaService/internal/integrations/payments"
)

// UseCase use case для создания бронирования с депозитом
type UseCase struct {
	bookingRepo     BookingRepository
	masterRepo      MasterRepository
	offeringRepo    OfferingRepository
	clientRepo      ClientRepository
	transactionRepo TransactionRepository
	calculator      DepositCalculator
	payments        PaymentGateway
	notifier        Notifier
	metrics         OutcomeMetrics
	txManager       TransactionManager
	peakWindows     []domain.PeakWindow
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// Deps зависимости use case
type Deps struct {
	BookingRepo     BookingRepository
	MasterRepo      MasterRepository
	OfferingRepo    OfferingRepository
	ClientRepo      ClientRepository
	TransactionRepo TransactionRepository
	Calculator      DepositCalculator
	Payments        PaymentGateway
	Notifier        Notifier
	Metrics         OutcomeMetrics
	TxManager       TransactionManager
	PeakWindows     []domain.PeakWindow
	Location        *time.Location
	Logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(d Deps) *UseCase {
	location := d.Location
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:     d.BookingRepo,
		masterRepo:      d.MasterRepo,
		offeringRepo:    d.OfferingRepo,
		clientRepo:      d.ClientRepo,
		transactionRepo: d.TransactionRepo,
		calculator:      d.Calculator,
		payments:        d.Payments,
		notifier:        d.Notifier,
		metrics:         d.Metrics,
		txManager:       d.TxManager,
		peakWindows:     d.PeakWindows,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          d.Logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: master=%d, service=%d, client=%d, date=%s %s",
		req.MasterID, req.ServiceID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 2. Мастер, услуга и клиент
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	service, err := uc.offeringRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.MasterID != master.ID {
		uc.logger.Warn("CreateBooking: service id=%d does not belong to master id=%d", service.ID, master.ID)
		return nil, ErrServiceNotFound
	}

	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 3. Услуга активна и доступна клиенту (new-clients-only)
	if !service.IsBookableBy(client) {
		uc.logger.Warn("CreateBooking: service id=%d is not bookable by client id=%d", service.ID, client.ID)
		return nil, ErrServiceNotAvailable
	}

	// 4. Дата и время с учетом настроек мастера
	settings := master.Settings
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateWorkingHours(settings, req.StartTime, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	startAt, err := req.StartTime.On(req.Date, uc.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateBookingTime(startAt, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	isPeak := domain.IsPeakTime(uc.peakWindows, req.StartTime)
	bookingDate := dateOnly(req.Date)

	// 5. Проверка слота, расчет депозита и создание записи в одной SERIALIZABLE транзакции
	var (
		created *domain.Booking
		quote   deposit.Quote
	)
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Перечитываем клиента под блокировкой: счетчики меняются конкурентно
		lockedClient, err := uc.clientRepo.GetByID(ctx, client.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to lock client: %v", ErrInternal, err)
		}
		client = lockedClient

		// Блокируем бронирования мастера на этот день (FOR UPDATE)
		dayBookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, domain.MasterBookingsFilter{
			MasterID:  master.ID,
			StartDate: &bookingDate,
			EndDate:   &bookingDate,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		if hasOverlap(req.StartTime, service.DurationMinutes, dayBookings) {
			return ErrSlotNotAvailable
		}

		quote, err = uc.calculator.Quote(service.Price, service.DurationMinutes, client.Reliability, deposit.Adjustments{
			IsPeakSlot:             isPeak,
			HasCancellationHistory: client.HasCancellationHistory(),
		})
		if err != nil {
			return fmt.Errorf("%w: deposit calculation: %v", ErrInternal, err)
		}

		created, err = uc.bookingRepo.Create(ctx, &domain.Booking{
			MasterID:           master.ID,
			ClientID:           client.ID,
			ServiceID:          service.ID,
			BookingDate:        bookingDate,
			StartTime:          req.StartTime,
			DurationMinutes:    service.DurationMinutes,
			Status:             domain.StatusPending,
			ServiceName:        service.Name,
			ServicePrice:       service.Price,
			DepositAmount:      quote.Amount,
			ClientReliability:  quote.Reliability,
			IsPeakSlot:         isPeak,
			RiskScore:          deposit.RiskScore(client.TotalBookings, client.NoShows, client.Cancellations),
			RescheduleDeadline: startAt.Add(-time.Duration(settings.RescheduleDeadlineHours) * time.Hour),
			Notes:              req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		client.TotalBookings++
		if err := uc.clientRepo.UpdateStats(ctx, client); err != nil {
			return fmt.Errorf("%w: failed to update client stats: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot %s %s is taken for master id=%d",
				bookingDate.Format(domain.DateFormat), req.StartTime, master.ID)
		} else {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	// 6. Удержание депозита вне транзакции; при ошибке запись остается pending
	clientSecret := uc.authorizeHold(ctx, created, client, req.PaymentMethodID)

	uc.notifier.NotifyBookingCreated(ctx, created, master, client)
	uc.metrics.IncBookingOutcome("created")

	uc.logger.Info("CreateBooking: booking id=%d created, status=%s, deposit=%s",
		created.ID, created.Status, created.DepositAmount.StringFixed(2))

	return &Response{
		Booking:      created,
		Quote:        quote,
		ClientSecret: clientSecret,
	}, nil
}

// authorizeHold создает удержание и привязывает его к бронированию
// Ошибки платежей не отменяют запись: она остается pending без авторизации
func (uc *UseCase) authorizeHold(ctx context.Context, b *domain.Booking, client *domain.Client, paymentMethodID *string) *string {
	hold, err := uc.payments.AuthorizeHold(ctx, payments.HoldRequest{
		BookingReference: fmt.Sprintf("booking-%d", b.ID),
		Amount:           b.DepositAmount,
		CustomerEmail:    client.Email,
		PaymentMethodID:  paymentMethodID,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: payment hold for booking id=%d failed, left pending: %v", b.ID, err)
		return nil
	}

	status := domain.StatusPending
	if hold.Authorized {
		status = domain.StatusConfirmed
	}

	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		if err := uc.bookingRepo.AttachPaymentHold(ctx, b.ID, &hold.IntentID, hold.Authorized, status); err != nil {
			return err
		}
		_, err := uc.transactionRepo.Create(ctx, &domain.Transaction{
			BookingID:  &b.ID,
			ClientID:   &b.ClientID,
			Type:       domain.TransactionTimeholdAuth,
			Amount:     b.DepositAmount,
			ExternalID: &hold.IntentID,
			Desc:       fmt.Sprintf("Deposit hold for %s", b.ServiceName),
		})
		return err
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to attach payment hold %s to booking id=%d: %v", hold.IntentID, b.ID, err)
		if relErr := uc.payments.ReleaseHold(ctx, hold.IntentID); relErr != nil {
			uc.logger.Error("CreateBooking: failed to release orphaned hold %s: %v", hold.IntentID, relErr)
		}
		return nil
	}

	b.PaymentIntentID = &hold.IntentID
	b.PaymentAuthorized = hold.Authorized
	b.Status = status

	return &hold.ClientSecret
}
