package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings"
)

const (
	msgMissingMasterID    = "требуется авторизация мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
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

// Handle POST /api/v1/masters/me/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("POST /masters/me/services - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/me/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), masterID, req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, offerings.ErrInvalidInput) {
			h.logger.Warn("POST /masters/me/services - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /masters/me/services - Failed to create service: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /masters/me/services - Service created: master_id=%d, service_id=%d", masterID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
