package master

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("master.repository: master not found")

	// ErrAlreadyExists возвращается при нарушении уникальности email или slug
	ErrAlreadyExists = errors.New("master.repository: master already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("master.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("master.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("master.repository: failed to scan row")
)
