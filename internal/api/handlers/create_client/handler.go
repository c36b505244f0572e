package create_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные клиента"
)

// CreateClientRequest HTTP request model
type CreateClientRequest struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

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

// Handle POST /api/v1/clients
// 201 для нового клиента, 200 если клиент с таким email уже есть
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, created, err := h.service.CreateOrGet(r.Context(), &models.CreateClientRequest{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, clients.ErrInvalidInput) {
			h.logger.Warn("POST /clients - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /clients - Failed to create client: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.logger.Info("POST /clients - Client resolved: client_id=%d, created=%t", result.ID, created)
	handlers.RespondJSON(w, status, result)
}
