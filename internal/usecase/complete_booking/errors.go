package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому мастеру
	ErrAccessDenied = errors.New("complete_booking: access denied")

	// ErrInvalidStatus возвращается, когда бронирование уже завершено, отменено или отмечено как неявка
	ErrInvalidStatus = errors.New("complete_booking: booking cannot be completed in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
