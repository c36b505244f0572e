package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// generateTimeSlots генерирует начала слотов рабочего дня с шагом step
// Услуга длительностью duration должна закончиться не позже конца рабочего дня
// Для сегодняшней даты отбрасываются слоты раньше now + minNotice
func generateTimeSlots(
	settings domain.BookingSettings,
	duration int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	step := settings.SlotStepMinutes
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	allSlots := make([]types.TimeString, 0)
	current := settings.WorkdayStart

	for current.IsBefore(settings.WorkdayEnd) {
		slotEnd, err := current.AddMinutes(duration)
		if err != nil || slotEnd.IsAfter(settings.WorkdayEnd) {
			break
		}

		allSlots = append(allSlots, current)
		current, err = current.AddMinutes(step)
		if err != nil {
			break
		}
	}

	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Сегодня: минимальное время начала с учетом уведомления
	minutesNow := now.Hour()*60 + now.Minute()
	minAllowed := minutesNow + settings.MinBookingNoticeMinutes

	available := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		m, err := slot.Minutes()
		if err != nil {
			continue
		}
		if m >= minAllowed {
			available = append(available, slot)
		}
	}

	return available, nil
}

// freeSlots оставляет только слоты без пересечений с активными бронированиями
func freeSlots(slots []types.TimeString, duration int, bookings []*domain.Booking) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !hasOverlap(slot, duration, bookings) {
			result = append(result, slot)
		}
	}
	return result
}

func hasOverlap(start types.TimeString, duration int, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же календарному дню
func isSameDay(date1, date2 time.Time) bool {
	return dateOnly(date1).Equal(dateOnly(date2))
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly календарная дата без учета часового пояса
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
