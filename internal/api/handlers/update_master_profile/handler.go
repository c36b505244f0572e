package update_master_profile

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
	msgInvalidData        = "некорректные данные профиля"
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

// Handle PATCH /api/v1/masters/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /masters/me - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /masters/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), masterID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("PATCH /masters/me - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("PATCH /masters/me - Invalid data: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /masters/me - Failed to update profile: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /masters/me - Profile updated successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
