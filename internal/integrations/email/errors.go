package email

import "errors"

var (
	// ErrSend ошибка отправки письма
	ErrSend = errors.New("email: failed to send")

	// ErrInvalidMessage письмо без получателя или темы
	ErrInvalidMessage = errors.New("email: invalid message")
)
