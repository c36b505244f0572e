package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный email или пароль"
	msgMissingFields      = "email и пароль обязательны"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	service MasterService
	logger  Logger
}

func NewHandler(service MasterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &models.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials")
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, masters.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Master logged in: master_id=%d", result.Master.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
