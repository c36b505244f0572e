package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no-show"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking represents a client's appointment with a master
// ServiceName, ServicePrice, DepositAmount and ClientReliability are snapshots taken at creation
// and are never recalculated afterwards
type Booking struct {
	ID              int64
	MasterID        int64
	ClientID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Snapshot
	ServiceName       string
	ServicePrice      decimal.Decimal
	DepositAmount     decimal.Decimal
	ClientReliability ClientReliability
	IsPeakSlot        bool

	// Payment hold
	PaymentIntentID   *string
	PaymentAuthorized bool

	RiskScore          int
	RescheduleDeadline time.Time
	Notes              *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the master's time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeSettled returns true if the booking can be marked completed or no-show
func (b *Booking) CanBeSettled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinal returns true if the booking reached a terminal status
func (b *Booking) IsFinal() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow || b.Status == StatusCancelled
}

// HasPaymentHold returns true if a payment authorization is attached to the booking
func (b *Booking) HasPaymentHold() bool {
	return b.PaymentIntentID != nil && *b.PaymentIntentID != ""
}

// Overlaps reports whether the booking intersects [start, start+duration) on the same day
// Intervals that only touch at a boundary do not overlap
func (b *Booking) Overlaps(start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	bookingEnd, err := b.StartTime.AddMinutes(b.DurationMinutes)
	if err != nil {
		return false
	}
	return b.StartTime.IsBefore(end) && bookingEnd.IsAfter(start)
}

// MasterBookingsFilter фильтр для получения бронирований мастера
type MasterBookingsFilter struct {
	MasterID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные/отмененные бронирования
	Limit           uint64         // 0 = без ограничения
}

// ParseBookingStatus validates a status tag coming from the API
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled, StatusRescheduled:
		return status, true
	default:
		return "", false
	}
}

// BookingStats aggregated booking numbers of a master
type BookingStats struct {
	Total           int
	Completed       int
	NoShows         int
	Cancelled       int
	Active          int
	ProtectedAmount decimal.Decimal
	AverageDeposit  decimal.Decimal
}

// NoShowRate percentage of settled bookings that ended as no-show
func (s *BookingStats) NoShowRate() float64 {
	settled := s.Completed + s.NoShows
	if settled == 0 {
		return 0
	}
	return float64(s.NoShows) * 100 / float64(settled)
}
