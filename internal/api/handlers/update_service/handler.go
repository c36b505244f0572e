package update_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings"
)

const (
	msgMissingMasterID    = "требуется авторизация мастера"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
	msgNotFound           = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle PATCH /api/v1/masters/me/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /masters/me/services/{id} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("PATCH /masters/me/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /masters/me/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), masterID, serviceID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, offerings.ErrServiceNotFound):
			h.logger.Warn("PATCH /masters/me/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, offerings.ErrAccessDenied):
			h.logger.Warn("PATCH /masters/me/services/{id} - Access denied: service_id=%d, master_id=%d",
				serviceID, masterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, offerings.ErrInvalidInput):
			h.logger.Warn("PATCH /masters/me/services/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /masters/me/services/{id} - Failed to update service: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /masters/me/services/{id} - Service updated: service_id=%d, base_deposit=%.2f",
		serviceID, result.BaseDeposit)
	handlers.RespondJSON(w, http.StatusOK, result)
}
