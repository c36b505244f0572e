package quote_deposit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	quoteDeposit "github.com/m04kA/SMC-SlottaService/internal/usecase/quote_deposit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите serviceId либо price и durationMinutes"
	msgUnknownReliability = "неизвестная категория надежности клиента"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	useCase QuoteDepositUseCase
	logger  Logger
}

func NewHandler(useCase QuoteDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/deposits/quote
// Публичный endpoint - предпросмотр депозита без создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /deposits/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, quoteDeposit.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteDeposit.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, quoteDeposit.ErrUnknownReliability):
			handlers.RespondBadRequest(w, msgUnknownReliability)

		case errors.Is(err, quoteDeposit.ErrInvalidInput):
			h.logger.Warn("POST /deposits/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /deposits/quote - Failed to quote deposit: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /deposits/quote - Deposit quoted: amount=%.2f, tier=%s, reliability=%s",
		result.Amount, result.Tier, result.Reliability)
	handlers.RespondJSON(w, http.StatusOK, result)
}
