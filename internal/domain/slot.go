package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// AvailableSlot represents a start time a client can book
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	IsPeak          bool
	DepositPreview  decimal.Decimal // deposit for a new client in this slot
}

// PeakWindow a daily time range with increased demand
type PeakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if t falls into [Start, End)
func (w PeakWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// IsPeakTime returns true if t falls into any of the windows
func IsPeakTime(windows []PeakWindow, t types.TimeString) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
