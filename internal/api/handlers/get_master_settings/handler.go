package get_master_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters"
)

const (
	msgMissingMasterID = "требуется авторизация мастера"
	msgNotFound        = "мастер не найден"
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

// Handle GET /api/v1/masters/me/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/settings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	result, err := h.service.GetSettings(r.Context(), masterID)
	if err != nil {
		if errors.Is(err, masters.ErrMasterNotFound) {
			h.logger.Warn("GET /masters/me/settings - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /masters/me/settings - Failed to get settings: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/me/settings - Settings retrieved successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
