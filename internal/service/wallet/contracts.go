package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// TransactionRepository интерфейс журнала транзакций
type TransactionRepository interface {
	GetByMasterID(ctx context.Context, masterID int64, limit uint64) ([]*domain.Transaction, error)
	GetMasterBalance(ctx context.Context, masterID int64) (decimal.Decimal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
