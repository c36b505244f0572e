package mark_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
)

// UseCase use case для отметки неявки клиента
type UseCase struct {
	bookingRepo     BookingRepository
	masterRepo      MasterRepository
	clientRepo      ClientRepository
	transactionRepo TransactionRepository
	payments        PaymentGateway
	notifier        Notifier
	metrics         OutcomeMetrics
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	masterRepo MasterRepository,
	clientRepo ClientRepository,
	transactionRepo TransactionRepository,
	payments PaymentGateway,
	notifier Notifier,
	metrics OutcomeMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		masterRepo:      masterRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		payments:        payments,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute отмечает неявку: депозит делится между мастером и кошельком клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: booking=%d, master=%d", req.BookingID, req.MasterID)

	if req.BookingID <= 0 || req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and masterID must be positive", ErrInvalidInput)
	}

	var (
		booking                  *domain.Booking
		client                   *domain.Client
		masterShare, clientShare decimal.Decimal
	)
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.MasterID != req.MasterID {
			return ErrAccessDenied
		}
		if !booking.CanBeSettled() {
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, booking.Status)
		}

		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusNoShow); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusNoShow

		// Разделение считается от снимка депозита, а не от текущей цены услуги
		masterShare, clientShare = deposit.SplitNoShow(booking.DepositAmount)

		client, err = uc.clientRepo.GetByID(ctx, booking.ClientID)
		if err != nil {
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		client.NoShows++
		client.WalletBalance = client.WalletBalance.Add(clientShare)
		client.Reliability = deposit.DetermineReliability(client.TotalBookings, client.NoShows)
		if err := uc.clientRepo.UpdateStats(ctx, client); err != nil {
			return fmt.Errorf("%w: failed to update client stats: %v", ErrInternal, err)
		}

		credits := []*domain.Transaction{
			{
				BookingID: &booking.ID,
				MasterID:  &booking.MasterID,
				Type:      domain.TransactionWalletCredit,
				Amount:    masterShare,
				Desc:      fmt.Sprintf("No-show compensation: %s", booking.ServiceName),
			},
			{
				BookingID: &booking.ID,
				ClientID:  &booking.ClientID,
				Type:      domain.TransactionWalletCredit,
				Amount:    clientShare,
				Desc:      fmt.Sprintf("Wallet credit from no-show deposit: %s", booking.ServiceName),
			},
		}
		for _, t := range credits {
			if _, err := uc.transactionRepo.Create(ctx, t); err != nil {
				return fmt.Errorf("%w: failed to record wallet credit: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("MarkNoShow: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("MarkNoShow: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	captured := uc.captureHold(ctx, booking)
	uc.metrics.IncBookingOutcome(string(domain.StatusNoShow))

	if master, err := uc.masterRepo.GetByID(ctx, booking.MasterID); err != nil {
		uc.logger.Warn("MarkNoShow: master id=%d not loaded, notification skipped: %v", booking.MasterID, err)
	} else {
		uc.notifier.NotifyNoShow(ctx, booking, master, client, masterShare, clientShare)
	}

	uc.logger.Info("MarkNoShow: booking id=%d no-show, master share=%s, client share=%s",
		booking.ID, masterShare.StringFixed(2), clientShare.StringFixed(2))

	return &Response{
		Booking:      booking,
		MasterShare:  masterShare,
		ClientShare:  clientShare,
		Reliability:  client.Reliability,
		HoldCaptured: captured,
	}, nil
}

// captureHold списывает депозит и пишет timehold_capture в журнал
func (uc *UseCase) captureHold(ctx context.Context, b *domain.Booking) bool {
	if !b.HasPaymentHold() {
		uc.logger.Warn("MarkNoShow: booking id=%d has no payment hold, nothing to capture", b.ID)
		return false
	}

	capture, err := uc.payments.CaptureHold(ctx, *b.PaymentIntentID, b.DepositAmount)
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to capture hold %s for booking id=%d: %v", *b.PaymentIntentID, b.ID, err)
		return false
	}

	_, err = uc.transactionRepo.Create(ctx, &domain.Transaction{
		BookingID:  &b.ID,
		MasterID:   &b.MasterID,
		ClientID:   &b.ClientID,
		Type:       domain.TransactionTimeholdCapture,
		Amount:     capture.Amount,
		ExternalID: &capture.IntentID,
		Desc:       fmt.Sprintf("Deposit captured: %s no-show", b.ServiceName),
	})
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to record capture for booking id=%d: %v", b.ID, err)
	}
	return true
}
