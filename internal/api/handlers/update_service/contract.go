package update_service

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
)

type OfferingService interface {
	Update(ctx context.Context, masterID, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
