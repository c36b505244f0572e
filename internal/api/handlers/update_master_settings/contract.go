package update_master_settings

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

type SettingsService interface {
	UpdateSettings(ctx context.Context, masterID int64, req *models.UpdateSettingsRequest) (*models.Settings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
