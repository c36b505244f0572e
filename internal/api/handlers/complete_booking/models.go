package complete_booking

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
	completeBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/complete_booking"
)

// CompleteBookingResponse HTTP response model
type CompleteBookingResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	ClientReliability string                  `json:"clientReliability"`
	HoldReleased      bool                    `json:"holdReleased"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.Response) *CompleteBookingResponse {
	return &CompleteBookingResponse{
		Booking:           models.FromDomainBooking(resp.Booking),
		ClientReliability: string(resp.Reliability),
		HoldReleased:      resp.HoldReleased,
	}
}
