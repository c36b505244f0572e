package offerings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	Create(ctx context.Context, s *domain.ServiceOffering) (*domain.ServiceOffering, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	GetByMasterID(ctx context.Context, masterID int64, activeOnly bool) ([]*domain.ServiceOffering, error)
	Update(ctx context.Context, s *domain.ServiceOffering) error
}

// DepositCalculator расчет базового депозита услуги
type DepositCalculator interface {
	Base(price decimal.Decimal, durationMinutes int) (decimal.Decimal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
