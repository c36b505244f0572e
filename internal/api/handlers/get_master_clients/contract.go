package get_master_clients

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
)

type ClientService interface {
	ListByMaster(ctx context.Context, masterID int64) (*models.ClientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
