package mark_no_show

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
	markNoShow "github.com/m04kA/SMC-SlottaService/internal/usecase/mark_no_show"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// NoShowResponse HTTP response model
type NoShowResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	MasterShare       float64                 `json:"masterShare"`
	ClientShare       float64                 `json:"clientShare"`
	ClientReliability string                  `json:"clientReliability"`
	HoldCaptured      bool                    `json:"holdCaptured"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markNoShow.Response) *NoShowResponse {
	return &NoShowResponse{
		Booking:           models.FromDomainBooking(resp.Booking),
		MasterShare:       money.Float(resp.MasterShare),
		ClientShare:       money.Float(resp.ClientShare),
		ClientReliability: string(resp.Reliability),
		HoldCaptured:      resp.HoldCaptured,
	}
}
