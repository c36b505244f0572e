package get_master

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

type MasterService interface {
	GetByID(ctx context.Context, id int64) (*models.MasterResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.MasterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
