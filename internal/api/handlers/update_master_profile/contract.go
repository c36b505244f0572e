package update_master_profile

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

type MasterService interface {
	UpdateProfile(ctx context.Context, masterID int64, req *models.UpdateProfileRequest) (*models.MasterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
