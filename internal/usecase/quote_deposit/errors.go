package quote_deposit

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("quote_deposit: service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("quote_deposit: client not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_deposit: invalid input data")

	// ErrUnknownReliability возвращается для неизвестной категории надежности
	ErrUnknownReliability = errors.New("quote_deposit: unknown reliability category")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_deposit: internal error")
)
