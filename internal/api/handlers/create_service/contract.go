package create_service

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
)

type OfferingService interface {
	Create(ctx context.Context, masterID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
