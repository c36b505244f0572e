package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
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

// Execute отменяет бронирование и снимает удержание депозита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}
	reason := normalizeReason(req.Reason)

	var (
		booking *domain.Booking
		client  *domain.Client
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
		if !isParticipant(booking, req) {
			return ErrAccessDenied
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		if err := uc.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusCancelled
		booking.CancellationReason = reason

		client, err = uc.clientRepo.GetByID(ctx, booking.ClientID)
		if err != nil {
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		client.Cancellations++
		if err := uc.clientRepo.UpdateStats(ctx, client); err != nil {
			return fmt.Errorf("%w: failed to update client stats: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelBooking: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("CancelBooking: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	released := uc.releaseHold(ctx, booking)
	uc.metrics.IncBookingOutcome(string(domain.StatusCancelled))

	if master, err := uc.masterRepo.GetByID(ctx, booking.MasterID); err != nil {
		uc.logger.Warn("CancelBooking: master id=%d not loaded, notification skipped: %v", booking.MasterID, err)
	} else {
		uc.notifier.NotifyBookingCancelled(ctx, booking, master, client)
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", booking.ID)

	return &Response{Booking: booking, HoldReleased: released}, nil
}

func (uc *UseCase) releaseHold(ctx context.Context, b *domain.Booking) bool {
	if !b.HasPaymentHold() {
		return false
	}

	if err := uc.payments.ReleaseHold(ctx, *b.PaymentIntentID); err != nil {
		uc.logger.Error("CancelBooking: failed to release hold %s for booking id=%d: %v", *b.PaymentIntentID, b.ID, err)
		return false
	}

	_, err := uc.transactionRepo.Create(ctx, &domain.Transaction{
		BookingID:  &b.ID,
		MasterID:   &b.MasterID,
		ClientID:   &b.ClientID,
		Type:       domain.TransactionTimeholdRelease,
		Amount:     b.DepositAmount,
		ExternalID: b.PaymentIntentID,
		Desc:       fmt.Sprintf("Deposit released: %s cancelled", b.ServiceName),
	})
	if err != nil {
		uc.logger.Error("CancelBooking: failed to record release for booking id=%d: %v", b.ID, err)
	}
	return true
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.MasterID == nil && req.ClientID == nil {
		return fmt.Errorf("%w: masterID or clientID is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

func isParticipant(b *domain.Booking, req *Request) bool {
	if req.MasterID != nil && *req.MasterID == b.MasterID {
		return true
	}
	return req.ClientID != nil && *req.ClientID == b.ClientID
}

// normalizeReason пустая причина хранится как NULL
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
