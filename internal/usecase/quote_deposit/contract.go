package quote_deposit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// DepositCalculator расчет депозита с разбивкой
type DepositCalculator interface {
	Quote(price decimal.Decimal, durationMinutes int, reliability domain.ClientReliability, adj deposit.Adjustments) (deposit.Quote, error)
}

// QuoteMetrics счетчик расчетов депозита
type QuoteMetrics interface {
	IncDepositQuote(tier, reliability string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
