package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
	AttachPaymentHold(ctx context.Context, id int64, paymentIntentID *string, authorized bool, status domain.BookingStatus) error
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
	UpdateStats(ctx context.Context, c *domain.Client) error
}

// TransactionRepository журнал транзакций
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
}

// DepositCalculator расчет депозита с разбивкой
type DepositCalculator interface {
	Quote(price decimal.Decimal, durationMinutes int, reliability domain.ClientReliability, adj deposit.Adjustments) (deposit.Quote, error)
}

// PaymentGateway авторизация удержания депозита
type PaymentGateway interface {
	AuthorizeHold(ctx context.Context, req payments.HoldRequest) (*payments.Hold, error)
	ReleaseHold(ctx context.Context, intentID string) error
}

// Notifier уведомления о новой записи
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, m *domain.Master, c *domain.Client)
}

// OutcomeMetrics счетчик исходов бронирований
type OutcomeMetrics interface {
	IncBookingOutcome(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
