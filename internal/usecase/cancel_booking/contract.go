package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason *string) error
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

// PaymentGateway снятие удержания депозита
type PaymentGateway interface {
	ReleaseHold(ctx context.Context, intentID string) error
}

// Notifier уведомление мастера об отмене
type Notifier interface {
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, m *domain.Master, c *domain.Client)
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
