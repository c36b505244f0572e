package mark_no_show

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("mark_no_show: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому мастеру
	ErrAccessDenied = errors.New("mark_no_show: access denied")

	// ErrInvalidStatus возвращается, когда бронирование уже в финальном статусе
	ErrInvalidStatus = errors.New("mark_no_show: booking cannot be marked as no-show in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_no_show: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_no_show: internal error")
)
