package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// Handle GET /api/v1/clients/{clientId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/bookings - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetClientBookingsRequest{
		ClientID: clientID,
		Status:   statusPtr,
	}

	result, err := h.service.GetClientBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /clients/{clientId}/bookings - Failed to get bookings: client_id=%d, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{clientId}/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
