package get_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgNotFound         = "услуга не найдена"
)

type Handler struct {
	service OfferingService
	logger  Logger
}

func NewHandler(service OfferingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.GetByID(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, offerings.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /services/{id} - Failed to get service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{id} - Service retrieved successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
