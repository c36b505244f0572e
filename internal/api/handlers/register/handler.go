package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные регистрации"
	msgEmailTaken         = "email уже зарегистрирован"
)

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

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrEmailTaken):
			h.logger.Warn("POST /auth/register - Email already registered")
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /auth/register - Failed to register master: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - Master registered: master_id=%d, slug=%s",
		result.Master.ID, result.Master.BookingSlug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
