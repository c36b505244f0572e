package list_master_services

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidParams   = "некорректные параметры запроса"
	msgMissingMasterID = "требуется авторизация мастера"
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

// Handle GET /api/v1/masters/{masterId}/services
// Публичный список: только активные услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathID(r, "masterId")
	if err != nil {
		h.logger.Warn("GET /masters/{id}/services - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	h.list(w, r, "GET /masters/{id}/services", masterID, true)
}

// HandleMe GET /api/v1/masters/me/services
// Query params: activeOnly (по умолчанию false - мастер видит все свои услуги)
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/services - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	activeOnly := false
	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /masters/me/services - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		activeOnly = parsed
	}

	h.list(w, r, "GET /masters/me/services", masterID, activeOnly)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, masterID int64, activeOnly bool) {
	result, err := h.service.ListByMaster(r.Context(), masterID, activeOnly)
	if err != nil {
		h.logger.Error("%s - Failed to list services: master_id=%d, error=%v", route, masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Services retrieved successfully: master_id=%d, count=%d", route, masterID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result.Services)
}
