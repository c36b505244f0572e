package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	createBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/ptr"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"masterId":1,"serviceId":2,"clientId":3,"bookingDate":"2026-10-15","startTime":"14:00"}`

func TestHandler_Handle(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
			return r.MasterID == 1 && r.ServiceID == 2 && r.ClientID == 3 &&
				r.StartTime == types.TimeString("14:00") && r.Date.Format(domain.DateFormat) == "2026-10-15"
		})).Return(&createBooking.Response{
			Booking: &domain.Booking{
				ID:            10,
				MasterID:      1,
				ClientID:      3,
				ServiceID:     2,
				BookingDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
				StartTime:     types.TimeString("14:00"),
				Status:        domain.StatusConfirmed,
				ServicePrice:  decimal.NewFromInt(100),
				DepositAmount: decimal.NewFromInt(39),
			},
			Quote: deposit.Quote{
				Amount:       decimal.NewFromInt(39),
				Tier:         deposit.TierMedium,
				BasePercent:  decimal.RequireFromString("0.325"),
				FinalPercent: decimal.RequireFromString("0.39"),
			},
			ClientSecret: ptr.Ptr("pi_secret"),
		}, nil)

		h := NewHandler(uc, logger.NewNop())
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

		require.Equal(t, http.StatusCreated, rec.Code)

		var body CreateBookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(10), body.Booking.ID)
		assert.Equal(t, "2026-10-15", body.Booking.BookingDate)
		assert.Equal(t, 39.0, body.Deposit.Amount)
		assert.Equal(t, 32.5, body.Deposit.BasePercent)
		assert.Equal(t, 39.0, body.Deposit.FinalPercent)
		require.NotNil(t, body.ClientSecret)
		assert.Equal(t, "pi_secret", *body.ClientSecret)
		uc.AssertExpectations(t)
	})

	t.Run("Invalid inputs are rejected before the use case", func(t *testing.T) {
		bodies := map[string]string{
			"Malformed JSON": `{"masterId":`,
			"Unknown field":  `{"masterId":1,"userId":5}`,
			"Bad date":       `{"masterId":1,"serviceId":2,"clientId":3,"bookingDate":"15.10.2026","startTime":"14:00"}`,
			"Bad time":       `{"masterId":1,"serviceId":2,"clientId":3,"bookingDate":"2026-10-15","startTime":"25:00"}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				uc := new(mockUseCase)
				h := NewHandler(uc, logger.NewNop())
				rec := httptest.NewRecorder()
				h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))

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
			{createBooking.ErrSlotNotAvailable, http.StatusConflict},
			{createBooking.ErrMasterNotFound, http.StatusNotFound},
			{createBooking.ErrServiceNotFound, http.StatusNotFound},
			{createBooking.ErrClientNotFound, http.StatusNotFound},
			{createBooking.ErrServiceNotAvailable, http.StatusBadRequest},
			{createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
			{createBooking.ErrTooLateToBook, http.StatusBadRequest},
			{createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
			{createBooking.ErrInternal, http.StatusInternalServerError},
			{errors.New("unexpected"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			t.Run(tt.err.Error(), func(t *testing.T) {
				uc := new(mockUseCase)
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

				h := NewHandler(uc, logger.NewNop())
				rec := httptest.NewRecorder()
				h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

				assert.Equal(t, tt.want, rec.Code)
				assert.Contains(t, rec.Body.String(), `"error"`)
			})
		}
	})
}
