package masters

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("master not found")

	// ErrEmailTaken возвращается при регистрации на занятый email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
