package cancel_booking

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
// clientId обязателен, если запрос пришел без сессии мастера
type CancelBookingRequest struct {
	ClientID           *int64  `json:"clientId,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking      *models.BookingResponse `json:"booking"`
	HoldReleased bool                    `json:"holdReleased"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// Сессия мастера имеет приоритет над clientId из тела
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64, masterID *int64) *cancelBooking.Request {
	req := &cancelBooking.Request{
		BookingID: bookingID,
		MasterID:  masterID,
		Reason:    r.CancellationReason,
	}
	if masterID == nil {
		req.ClientID = r.ClientID
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:      models.FromDomainBooking(resp.Booking),
		HoldReleased: resp.HoldReleased,
	}
}
