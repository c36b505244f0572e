package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// BookingRepository агрегаты бронирований мастера
type BookingRepository interface {
	GetMasterStats(ctx context.Context, masterID int64) (*domain.BookingStats, error)
	GetClientIDsByMasterID(ctx context.Context, masterID int64) ([]int64, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Client, error)
}

// TransactionRepository баланс кошелька мастера
type TransactionRepository interface {
	GetMasterBalance(ctx context.Context, masterID int64) (decimal.Decimal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
