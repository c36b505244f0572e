package quote_deposit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	quoteDeposit "github.com/m04kA/SMC-SlottaService/internal/usecase/quote_deposit"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *quoteDeposit.Request) (*quoteDeposit.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quoteDeposit.Response), args.Error(1)
}

const rawBody = `{"price":100,"durationMinutes":90,"reliability":"new","isPeakSlot":true,"hasCancellationHistory":true}`

func doQuote(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/deposits/quote", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("Quoted", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *quoteDeposit.Request) bool {
			return r.ServiceID == nil && r.Price != nil && *r.Price == 100 &&
				r.DurationMinutes != nil && *r.DurationMinutes == 90 &&
				r.Reliability != nil && *r.Reliability == "new" &&
				r.IsPeakSlot && r.HasCancellationHistory != nil && *r.HasCancellationHistory
		})).Return(&quoteDeposit.Response{
			Amount:              58.31,
			RawAmount:           58.305,
			Tier:                "medium",
			BasePercent:         32.5,
			FinalPercent:        58.305,
			Reliability:         "new",
			PeakApplied:         true,
			CancellationApplied: true,
		}, nil)

		rec := doQuote(NewHandler(uc, logger.NewNop()), rawBody)

		require.Equal(t, http.StatusOK, rec.Code)

		var body quoteDeposit.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 58.31, body.Amount)
		assert.Equal(t, "medium", body.Tier)
		assert.True(t, body.PeakApplied)
		assert.True(t, body.CancellationApplied)
		uc.AssertExpectations(t)
	})

	t.Run("Service quote passes ids", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *quoteDeposit.Request) bool {
			return r.ServiceID != nil && *r.ServiceID == 5 &&
				r.ClientID != nil && *r.ClientID == 3 &&
				r.Price == nil && r.HasCancellationHistory == nil
		})).Return(&quoteDeposit.Response{Amount: 39, Tier: "medium", Reliability: "new"}, nil)

		rec := doQuote(NewHandler(uc, logger.NewNop()), `{"serviceId":5,"clientId":3}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Invalid bodies are rejected before the use case", func(t *testing.T) {
		bodies := map[string]string{
			"Malformed JSON": `{"price":`,
			"Unknown field":  `{"price":100,"durationMinutes":90,"discount":5}`,
			"Wrong type":     `{"price":"100","durationMinutes":90}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				uc := new(mockUseCase)
				rec := doQuote(NewHandler(uc, logger.NewNop()), body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Use case errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{quoteDeposit.ErrInvalidInput, http.StatusBadRequest},
			{quoteDeposit.ErrUnknownReliability, http.StatusBadRequest},
			{quoteDeposit.ErrServiceNotFound, http.StatusNotFound},
			{quoteDeposit.ErrClientNotFound, http.StatusNotFound},
			{quoteDeposit.ErrInternal, http.StatusInternalServerError},
			{errors.New("unexpected"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			t.Run(tt.err.Error(), func(t *testing.T) {
				uc := new(mockUseCase)
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

				rec := doQuote(NewHandler(uc, logger.NewNop()), rawBody)

				assert.Equal(t, tt.want, rec.Code)
				assert.Contains(t, rec.Body.String(), `"error"`)
			})
		}
	})

	t.Run("Wrapped errors keep their status", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.Anything).
			Return(nil, errors.Join(quoteDeposit.ErrUnknownReliability, errors.New("tag \"vip\"")))

		rec := doQuote(NewHandler(uc, logger.NewNop()), rawBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), msgUnknownReliability)
	})
}
