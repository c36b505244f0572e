package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	// ErrSend ошибка отправки сообщения
	ErrSend = errors.New("telegram: failed to send message")

	// ErrNoChat у мастера не подключен чат
	ErrNoChat = errors.New("telegram: chat is not connected")
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BotNotifier отправляет уведомления мастерам в Telegram
type BotNotifier struct {
	bot *tgbotapi.BotAPI
	log Logger
}

// NewBotNotifier авторизует бота (запрос getMe)
func NewBotNotifier(token string, log Logger) (*BotNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to init bot: %w", err)
	}

	log.Info("Telegram bot authorized as @%s", bot.Self.UserName)
	return &BotNotifier{bot: bot, log: log}, nil
}

func (n *BotNotifier) SendMessage(chatID int64, text string) error {
	if chatID == 0 {
		return ErrNoChat
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: chat %d: %v", ErrSend, chatID, err)
	}
	return nil
}

// MockNotifier пишет сообщения в лог
type MockNotifier struct {
	log Logger
}

func NewMockNotifier(log Logger) *MockNotifier {
	return &MockNotifier{log: log}
}

func (n *MockNotifier) SendMessage(chatID int64, text string) error {
	if chatID == 0 {
		return ErrNoChat
	}
	n.log.Info("[mock telegram] chat=%d: %s", chatID, text)
	return nil
}
