package get_available_slots

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
}

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// DepositCalculator расчет предварительного депозита слота
type DepositCalculator interface {
	Compute(price decimal.Decimal, durationMinutes int, reliability domain.ClientReliability, adj deposit.Adjustments) (decimal.Decimal, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
