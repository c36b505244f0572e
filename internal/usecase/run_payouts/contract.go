package run_payouts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetAll(ctx context.Context) ([]*domain.Master, error)
}

// TransactionRepository журнал транзакций и баланс кошелька мастера
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	GetMasterBalance(ctx context.Context, masterID int64) (decimal.Decimal, error)
}

// PaymentGateway перевод на подключенный аккаунт мастера
type PaymentGateway interface {
	Payout(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error)
}

// Notifier уведомление о выплате
type Notifier interface {
	NotifyPayout(ctx context.Context, m *domain.Master, amount decimal.Decimal)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
