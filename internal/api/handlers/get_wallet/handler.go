package get_wallet

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
)

const (
	msgMissingMasterID = "требуется авторизация мастера"
	msgInvalidLimit    = "некорректный параметр limit"
)

type Handler struct {
	service WalletService
	logger  Logger
}

func NewHandler(service WalletService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/me/wallet
// Query params: limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/me/wallet - Missing session")
		handlers.RespondUnauthorized(w, msgMissingMasterID)
		return
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /masters/me/wallet - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.Get(r.Context(), masterID, limit)
	if err != nil {
		h.logger.Error("GET /masters/me/wallet - Failed to get wallet: master_id=%d, error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/me/wallet - Wallet retrieved successfully: master_id=%d, balance=%.2f",
		masterID, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
