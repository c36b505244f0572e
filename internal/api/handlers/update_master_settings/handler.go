package update_master_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters"
)

const (
	msgMissingMasterID    = "требуется авторизация мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "мастер не найден"
	msgInvalidData        = "некорректные настройки бронирования"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/masters/me/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("PUT /masters/me/settings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	// Декодируем body
	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /masters/me/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), masterID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("PUT /masters/me/settings - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("PUT /masters/me/settings - Invalid data: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /masters/me/settings - Failed to update settings: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /masters/me/settings - Settings updated successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
