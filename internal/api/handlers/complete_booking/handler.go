package complete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	completeBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/complete_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingMasterID  = "требуется авторизация мастера"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgInvalidStatus    = "бронирование нельзя завершить в текущем статусе"
)

type Handler struct {
	useCase CompleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/complete - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &completeBooking.Request{
		BookingID: bookingID,
		MasterID:  masterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id}/complete - Access denied: booking_id=%d, master_id=%d", bookingID, masterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completeBooking.ErrInvalidStatus):
			h.logger.Warn("PUT /bookings/{id}/complete - Invalid status: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, completeBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PUT /bookings/{id}/complete - Failed to complete booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/complete - Booking completed: booking_id=%d, reliability=%s",
		bookingID, resp.Reliability)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
