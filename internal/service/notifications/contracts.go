package notifications

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/integrations/email"
)

// EmailSender отправка писем (SendGrid или mock)
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// TelegramSender отправка сообщений мастеру в Telegram
type TelegramSender interface {
	SendMessage(chatID int64, text string) error
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
