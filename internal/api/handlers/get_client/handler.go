package get_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingEmail    = "параметр email обязателен"
	msgNotFound        = "клиент не найден"
)

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

// Handle GET /api/v1/clients/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.service.GetByID(r.Context(), clientID)
	h.respond(w, "GET /clients/{id}", result, err)
}

// HandleByEmail GET /api/v1/clients?email=...
func (h *Handler) HandleByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.GetByEmail(r.Context(), email)
	h.respond(w, "GET /clients", result, err)
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.ClientResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("%s - Client not found", route)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, clients.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingEmail)

		default:
			h.logger.Error("%s - Failed to get client: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Client retrieved successfully: client_id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
