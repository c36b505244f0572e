package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/security"
	cancelBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelBooking.Response), args.Error(1)
}

func newRequest(body string, bookingID string, session *security.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if session != nil {
		req = req.WithContext(security.WithSession(req.Context(), session))
	}
	return req
}

func cancelled() *cancelBooking.Response {
	return &cancelBooking.Response{
		Booking:      &domain.Booking{ID: 7, Status: domain.StatusCancelled},
		HoldReleased: true,
	}
}

func TestHandler_Handle(t *testing.T) {
	t.Run("Master session wins over clientId in body", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *cancelBooking.Request) bool {
			return r.BookingID == 7 && r.MasterID != nil && *r.MasterID == 1 && r.ClientID == nil
		})).Return(cancelled(), nil)

		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec,
			newRequest(`{"clientId":3,"cancellationReason":"заболел"}`, "7", &security.Session{MasterID: 1}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"holdReleased":true`)
		uc.AssertExpectations(t)
	})

	t.Run("Client cancels without session", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *cancelBooking.Request) bool {
			return r.MasterID == nil && r.ClientID != nil && *r.ClientID == 3
		})).Return(cancelled(), nil)

		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(`{"clientId":3}`, "7", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Invalid booking id", func(t *testing.T) {
		uc := new(mockUseCase)
		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(`{}`, "abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("Use case errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{cancelBooking.ErrBookingNotFound, http.StatusNotFound},
			{cancelBooking.ErrAccessDenied, http.StatusForbidden},
			{cancelBooking.ErrCannotCancel, http.StatusConflict},
			{cancelBooking.ErrInvalidInput, http.StatusBadRequest},
			{cancelBooking.ErrInternal, http.StatusInternalServerError},
		}
		for _, tt := range tests {
			t.Run(tt.err.Error(), func(t *testing.T) {
				uc := new(mockUseCase)
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

				rec := httptest.NewRecorder()
				NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(`{"clientId":3}`, "7", nil))

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})
}
