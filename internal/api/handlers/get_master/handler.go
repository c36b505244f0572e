package get_master

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidSlug     = "некорректная ссылка бронирования"
	msgMissingMasterID = "требуется авторизация мастера"
	msgNotFound        = "мастер не найден"
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

// Handle GET /api/v1/masters/{masterId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathID(r, "masterId")
	if err != nil {
		h.logger.Warn("GET /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), masterID)
	h.respond(w, "GET /masters/{id}", result, err)
}

// HandleMe GET /api/v1/masters/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), masterID)
	h.respond(w, "GET /masters/me", result, err)
}

// HandleBySlug GET /api/v1/book/{slug}
// Публичная страница записи мастера
func (h *Handler) HandleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgInvalidSlug)
		return
	}

	result, err := h.service.GetBySlug(r.Context(), slug)
	h.respond(w, "GET /book/{slug}", result, err)
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.MasterResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("%s - Master not found", route)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, masters.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlug)

		default:
			h.logger.Error("%s - Failed to get master: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Master retrieved successfully: master_id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
