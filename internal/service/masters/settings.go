package masters

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	masterRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/master"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// GetSettings получает настройки бронирования мастера
func (s *Service) GetSettings(ctx context.Context, masterID int64) (*models.Settings, error) {
	master, err := s.get(ctx, "GetSettings", func() (*domain.Master, error) { return s.masterRepo.GetByID(ctx, masterID) })
	if err != nil {
		return nil, err
	}
	settings := models.FromDomainSettings(master.Settings)
	return &settings, nil
}

// UpdateSettings частично обновляет настройки бронирования
func (s *Service) UpdateSettings(ctx context.Context, masterID int64, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	s.logger.Info("UpdateSettings: updating settings of master id=%d", masterID)

	master, err := s.get(ctx, "UpdateSettings", func() (*domain.Master, error) { return s.masterRepo.GetByID(ctx, masterID) })
	if err != nil {
		return nil, err
	}

	settings, err := applySettings(master.Settings, req)
	if err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	if err := s.masterRepo.UpdateSettings(ctx, masterID, settings); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		s.logger.Error("UpdateSettings: repository error for master id=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: updated settings of master id=%d", masterID)
	resp := models.FromDomainSettings(settings)
	return &resp, nil
}

func applySettings(current domain.BookingSettings, req *models.UpdateSettingsRequest) (domain.BookingSettings, error) {
	if req.RescheduleDeadlineHours != nil {
		current.RescheduleDeadlineHours = *req.RescheduleDeadlineHours
	}
	if req.WorkdayStart != nil {
		t, err := types.NewTimeStringFromString(*req.WorkdayStart)
		if err != nil {
			return current, fmt.Errorf("%w: workdayStart: %v", ErrInvalidInput, err)
		}
		current.WorkdayStart = t
	}
	if req.WorkdayEnd != nil {
		t, err := types.NewTimeStringFromString(*req.WorkdayEnd)
		if err != nil {
			return current, fmt.Errorf("%w: workdayEnd: %v", ErrInvalidInput, err)
		}
		current.WorkdayEnd = t
	}
	if req.SlotStepMinutes != nil {
		current.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.MinBookingNoticeMinutes != nil {
		current.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
	}
	if req.AdvanceBookingDays != nil {
		current.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	return current, nil
}

// validateSettings валидирует настройки бронирования
func validateSettings(s domain.BookingSettings) error {
	if !slices.Contains(domain.AllowedRescheduleDeadlineHours, s.RescheduleDeadlineHours) {
		return fmt.Errorf("%w: rescheduleDeadlineHours must be one of %v", ErrInvalidInput, domain.AllowedRescheduleDeadlineHours)
	}

	if !s.WorkdayStart.IsBefore(s.WorkdayEnd) {
		return fmt.Errorf("%w: workdayStart must be before workdayEnd", ErrInvalidInput)
	}

	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
