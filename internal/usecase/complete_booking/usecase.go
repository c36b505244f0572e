package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
)

// UseCase use case для завершения визита
type UseCase struct {
	bookingRepo     BookingRepository
	clientRepo      ClientRepository
	transactionRepo TransactionRepository
	payments        PaymentGateway
	metrics         OutcomeMetrics
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	transactionRepo TransactionRepository,
	payments PaymentGateway,
	metrics OutcomeMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		payments:        payments,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute отмечает визит как состоявшийся и снимает удержание депозита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, master=%d", req.BookingID, req.MasterID)

	if req.BookingID <= 0 || req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and masterID must be positive", ErrInvalidInput)
	}

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
		if booking.MasterID != req.MasterID {
			return ErrAccessDenied
		}
		if !booking.CanBeSettled() {
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, booking.Status)
		}

		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusCompleted

		client, err = uc.clientRepo.GetByID(ctx, booking.ClientID)
		if err != nil {
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		client.CompletedBookings++
		client.Reliability = deposit.DetermineReliability(client.TotalBookings, client.NoShows)
		if err := uc.clientRepo.UpdateStats(ctx, client); err != nil {
			return fmt.Errorf("%w: failed to update client stats: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CompleteBooking: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("CompleteBooking: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	released := uc.releaseHold(ctx, booking)
	uc.metrics.IncBookingOutcome(string(domain.StatusCompleted))

	uc.logger.Info("CompleteBooking: booking id=%d completed, client id=%d is now %s",
		booking.ID, client.ID, client.Reliability)

	return &Response{
		Booking:      booking,
		Reliability:  client.Reliability,
		HoldReleased: released,
	}, nil
}

// releaseHold снимает удержание и пишет timehold_release в журнал
// Ошибка провайдера не откатывает завершение визита
func (uc *UseCase) releaseHold(ctx context.Context, b *domain.Booking) bool {
	if !b.HasPaymentHold() {
		return false
	}

	if err := uc.payments.ReleaseHold(ctx, *b.PaymentIntentID); err != nil {
		uc.logger.Error("CompleteBooking: failed to release hold %s for booking id=%d: %v", *b.PaymentIntentID, b.ID, err)
		return false
	}

	_, err := uc.transactionRepo.Create(ctx, &domain.Transaction{
		BookingID:  &b.ID,
		MasterID:   &b.MasterID,
		ClientID:   &b.ClientID,
		Type:       domain.TransactionTimeholdRelease,
		Amount:     b.DepositAmount,
		ExternalID: b.PaymentIntentID,
		Desc:       fmt.Sprintf("Deposit released: %s completed", b.ServiceName),
	})
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to record release for booking id=%d: %v", b.ID, err)
	}
	return true
}
