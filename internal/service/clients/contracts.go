package clients

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Client, error)
}

// BookingRepository источник клиентов мастера
type BookingRepository interface {
	GetClientIDsByMasterID(ctx context.Context, masterID int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
