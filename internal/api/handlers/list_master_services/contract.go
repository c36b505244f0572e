package list_master_services

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
)

type OfferingService interface {
	ListByMaster(ctx context.Context, masterID int64, activeOnly bool) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
