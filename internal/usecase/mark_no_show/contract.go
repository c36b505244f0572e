package mark_no_show

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	UpdateStats(ctx context.Context, c *domain.Client) error
}

// TransactionRepository журнал транзакций
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
}

// PaymentGateway списание удержанного депозита
type PaymentGateway interface {
	CaptureHold(ctx context.Context, intentID string, amount decimal.Decimal) (*payments.Capture, error)
}

// Notifier уведомление мастера о неявке
type Notifier interface {
	NotifyNoShow(ctx context.Context, b *domain.Booking, m *domain.Master, c *domain.Client, masterShare, clientShare decimal.Decimal)
}

// OutcomeMetrics счетчик исходов бронирований
type OutcomeMetrics interface {
	IncBookingOutcome(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
