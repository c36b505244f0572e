package get_available_slots

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("master not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не принадлежит мастеру
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("service is not active")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
