package update_master_settings

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

// UpdateSettingsRequest HTTP request model, отсутствующие поля не меняются
type UpdateSettingsRequest struct {
	RescheduleDeadlineHours *int    `json:"rescheduleDeadlineHours,omitempty"`
	WorkdayStart            *string `json:"workdayStart,omitempty"`
	WorkdayEnd              *string `json:"workdayEnd,omitempty"`
	SlotStepMinutes         *int    `json:"slotStepMinutes,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		RescheduleDeadlineHours: r.RescheduleDeadlineHours,
		WorkdayStart:            r.WorkdayStart,
		WorkdayEnd:              r.WorkdayEnd,
		SlotStepMinutes:         r.SlotStepMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
