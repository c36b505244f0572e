package get_master_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings"
)

const (
	msgMissingMasterID = "требуется авторизация мастера"
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidRange    = "начало периода позже конца"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/me/bookings
// Query params: status, date, from, to, includeInactive, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	serviceReq, err := ToServiceRequest(masterID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /masters/me/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetMasterBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /masters/me/bookings - Failed to get bookings: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/me/bookings - Bookings retrieved successfully: master_id=%d, count=%d",
		masterID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
