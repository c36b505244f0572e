package models

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64
	Status   *string
}

// GetMasterBookingsRequest запрос на получение бронирований мастера
type GetMasterBookingsRequest struct {
	MasterID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
	Limit           uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMasterBookingsRequest) ToDomainFilter(status *domain.BookingStatus) domain.MasterBookingsFilter {
	return domain.MasterBookingsFilter{
		MasterID:        r.MasterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Status:          status,
		IncludeInactive: r.IncludeInactive || status != nil,
		Limit:           r.Limit,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	MasterID        int64  `json:"masterId"`
	ClientID        int64  `json:"clientId"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Снимок на момент создания
	ServiceName       string  `json:"serviceName"`
	ServicePrice      float64 `json:"servicePrice"`
	DepositAmount     float64 `json:"depositAmount"`
	ClientReliability string  `json:"clientReliability"`
	IsPeakSlot        bool    `json:"isPeakSlot"`

	PaymentIntentID   *string `json:"paymentIntentId,omitempty"`
	PaymentAuthorized bool    `json:"paymentAuthorized"`

	RiskScore          int       `json:"riskScore"`
	RescheduleDeadline time.Time `json:"rescheduleDeadline"`
	Notes              *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		MasterID:           b.MasterID,
		ClientID:           b.ClientID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       money.Float(b.ServicePrice),
		DepositAmount:      money.Float(b.DepositAmount),
		ClientReliability:  string(b.ClientReliability),
		IsPeakSlot:         b.IsPeakSlot,
		PaymentIntentID:    b.PaymentIntentID,
		PaymentAuthorized:  b.PaymentAuthorized,
		RiskScore:          b.RiskScore,
		RescheduleDeadline: b.RescheduleDeadline,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
