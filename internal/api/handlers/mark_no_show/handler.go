package mark_no_show

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	markNoShow "github.com/m04kA/SMC-SlottaService/internal/usecase/mark_no_show"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingMasterID  = "требуется авторизация мастера"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgInvalidStatus    = "неявку можно отметить только для подтвержденного бронирования"
)

type Handler struct {
	useCase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(useCase MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/no-show - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/no-show - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &markNoShow.Request{
		BookingID: bookingID,
		MasterID:  masterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, markNoShow.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/no-show - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markNoShow.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id}/no-show - Access denied: booking_id=%d, master_id=%d", bookingID, masterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markNoShow.ErrInvalidStatus):
			h.logger.Warn("PUT /bookings/{id}/no-show - Invalid status: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, markNoShow.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PUT /bookings/{id}/no-show - Failed to mark no-show: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/no-show - No-show recorded: booking_id=%d, master_share=%s, client_share=%s",
		bookingID, resp.MasterShare.StringFixed(2), resp.ClientShare.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
