package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if dateOnly(bookingDate).Before(dateOnly(now)) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что визит начнется не раньше now + minBookingNoticeMinutes
func validateBookingTime(startAt time.Time, now time.Time, minBookingNoticeMinutes int) error {
	if !startAt.After(now) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidDate)
	}

	minAllowed := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if startAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateWorkingHours проверяет, что визит помещается в рабочий день
func validateWorkingHours(settings domain.BookingSettings, start types.TimeString, duration int) error {
	end, err := start.AddMinutes(duration)
	if err != nil {
		return ErrOutsideWorkingHours
	}
	if start.IsBefore(settings.WorkdayStart) || end.IsAfter(settings.WorkdayEnd) {
		return fmt.Errorf("%w: working hours are %s-%s", ErrOutsideWorkingHours, settings.WorkdayStart, settings.WorkdayEnd)
	}
	return nil
}

// hasOverlap есть ли активное бронирование, пересекающееся с визитом
func hasOverlap(start types.TimeString, duration int, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

// dateOnly календарная дата без учета часового пояса
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
