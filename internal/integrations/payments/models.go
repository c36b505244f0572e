package payments

import "github.com/shopspring/decimal"

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HoldRequest параметры авторизации депозита
type HoldRequest struct {
	BookingReference string
	Amount           decimal.Decimal
	CustomerEmail    string
	// PaymentMethodID если передан, платеж подтверждается сразу
	PaymentMethodID *string
}

// Hold результат авторизации
type Hold struct {
	IntentID     string
	ClientSecret string
	Authorized   bool
}

// Capture результат списания
type Capture struct {
	IntentID string
	Amount   decimal.Decimal
}
