package domain

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// Master represents a beauty professional who owns services and bookings
type Master struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Specialty    *string
	Bio          *string
	PhotoURL     *string
	Location     *string
	BookingSlug  string

	StripeConnectID *string
	TelegramChatID  *int64

	Settings BookingSettings

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingSettings per-master booking rules
type BookingSettings struct {
	RescheduleDeadlineHours int              // 24, 48 or 72
	WorkdayStart            types.TimeString // начало рабочего дня
	WorkdayEnd              types.TimeString // конец рабочего дня
	SlotStepMinutes         int              // шаг сетки слотов
	MinBookingNoticeMinutes int              // минимальное время до начала записи
	AdvanceBookingDays      int              // 0 = unlimited
}

// DefaultBookingSettings settings applied to newly registered masters
func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		RescheduleDeadlineHours: DefaultRescheduleDeadlineHours,
		WorkdayStart:            DefaultWorkdayStart,
		WorkdayEnd:              DefaultWorkdayEnd,
		SlotStepMinutes:         DefaultSlotStepMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// HasTelegram returns true if the master connected a telegram chat
func (m *Master) HasTelegram() bool {
	return m.TelegramChatID != nil && *m.TelegramChatID != 0
}

// HasPayoutAccount returns true if the master connected a Stripe account
func (m *Master) HasPayoutAccount() bool {
	return m.StripeConnectID != nil && *m.StripeConnectID != ""
}
