package analytics

import "errors"

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("service: internal error")
