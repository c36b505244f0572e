package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SlottaService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingServiceID   = "ID услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidParams      = "некорректный формат даты (YYYY-MM-DD) или ID клиента"
	msgMasterNotFound     = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
	msgServiceInactive    = "услуга недоступна для записи"
	msgInvalidBookingDate = "дата уже прошла"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), clientId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathID(r, "masterId")
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(masterID, serviceID, dateStr, query.Get("clientId"))
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMasterNotFound):
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /masters/{id}/slots - Failed to get slots: master_id=%d, service_id=%d, error=%v",
				masterID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/slots - Slots retrieved successfully: master_id=%d, service_id=%d, slots_count=%d",
		masterID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
