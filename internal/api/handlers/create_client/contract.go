package create_client

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
)

type ClientService interface {
	CreateOrGet(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
