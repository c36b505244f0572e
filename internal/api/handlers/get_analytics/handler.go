package get_analytics

import (
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
)

const msgMissingMasterID = "требуется авторизация мастера"

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/me/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/analytics - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	result, err := h.service.GetMasterAnalytics(r.Context(), masterID)
	if err != nil {
		h.logger.Error("GET /masters/me/analytics - Failed to get analytics: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/me/analytics - Analytics retrieved successfully: master_id=%d, no_show_rate=%.1f",
		masterID, result.NoShowRate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
