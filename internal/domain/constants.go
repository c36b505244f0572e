package domain

import "github.com/m04kA/SMC-SlottaService/pkg/types"

// Default booking settings
const (
	DefaultRescheduleDeadlineHours = 24
	DefaultWorkdayStart            = types.TimeString("09:00")
	DefaultWorkdayEnd              = types.TimeString("18:00")
	DefaultSlotStepMinutes         = 30
	DefaultMinBookingNoticeMinutes = 60
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MaxServiceDurationMinutes   = 720
	MaxAdvanceBookingDays       = 365
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 120
	MinPasswordLength           = 8
)

// AllowedRescheduleDeadlineHours values a master may choose for the free reschedule window
var AllowedRescheduleDeadlineHours = []int{24, 48, 72}

// Reliability thresholds
const (
	NeedsProtectionNoShows = 2 // 2+ no-shows
	NewClientMaxBookings   = 3 // fewer bookings than this = new
)

// Payouts
const (
	MinPayoutAmount = 50.0 // EUR
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses booking statuses that no longer hold a slot
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
	StatusRescheduled,
}

// ActiveStatuses booking statuses that hold a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
