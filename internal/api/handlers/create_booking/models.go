package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SlottaService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MasterID        int64   `json:"masterId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        int64   `json:"clientId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	Notes           *string `json:"notes,omitempty"`
	PaymentMethodID *string `json:"paymentMethodId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking      *models.BookingResponse `json:"booking"`
	Deposit      DepositBreakdown        `json:"deposit"`
	ClientSecret *string                 `json:"clientSecret,omitempty"`
}

// DepositBreakdown как получен депозит (проценты в процентах, 32.5 = 32.5 %)
type DepositBreakdown struct {
	Amount       float64 `json:"amount"`
	Tier         string  `json:"tier"`
	BasePercent  float64 `json:"basePercent"`
	FinalPercent float64 `json:"finalPercent"`
	PeakApplied  bool    `json:"peakApplied"`
	FloorApplied bool    `json:"floorApplied"`
	CeilApplied  bool    `json:"ceilingApplied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		MasterID:        r.MasterID,
		ServiceID:       r.ServiceID,
		ClientID:        r.ClientID,
		Date:            bookingDate,
		StartTime:       startTime,
		Notes:           r.Notes,
		PaymentMethodID: r.PaymentMethodID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	q := resp.Quote
	return &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Deposit: DepositBreakdown{
			Amount:       money.Float(q.Amount),
			Tier:         string(q.Tier),
			BasePercent:  q.BasePercent.Shift(2).InexactFloat64(),
			FinalPercent: q.FinalPercent.Shift(2).Round(2).InexactFloat64(),
			PeakApplied:  q.PeakApplied,
			FloorApplied: q.FloorApplied,
			CeilApplied:  q.CeilingApplied,
		},
		ClientSecret: resp.ClientSecret,
	}
}
