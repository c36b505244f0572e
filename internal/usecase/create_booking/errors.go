package create_booking

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не принадлежит мастеру
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrServiceNotAvailable возвращается для неактивной услуги или услуги только для новых клиентов
	ErrServiceNotAvailable = errors.New("create_booking: service is not available for this client")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда визит не помещается в рабочий день мастера
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrSlotNotAvailable возвращается, когда время пересекается с другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
