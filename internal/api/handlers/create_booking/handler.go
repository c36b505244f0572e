package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные бронирования"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgMasterNotFound      = "мастер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgClientNotFound      = "клиент не найден"
	msgServiceNotAvailable = "услуга недоступна для этого клиента"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgOutsideHours        = "выбранное время вне рабочих часов мастера"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: master_id=%d, date=%s %s", req.MasterID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrMasterNotFound):
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotAvailable):
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: master_id=%d, client_id=%d, error=%v",
				req.MasterID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, master_id=%d, client_id=%d",
		result.Booking.ID, req.MasterID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
