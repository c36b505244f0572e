package get_master_clients

import (
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
)

const msgMissingMasterID = "требуется авторизация мастера"

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/me/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/clients - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	result, err := h.service.ListByMaster(r.Context(), masterID)
	if err != nil {
		h.logger.Error("GET /masters/me/clients - Failed to list clients: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/me/clients - Clients retrieved successfully: master_id=%d, count=%d",
		masterID, len(result.Clients))
	handlers.RespondJSON(w, http.StatusOK, result.Clients)
}
