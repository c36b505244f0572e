package mark_no_show

import (
	"context"

	markNoShow "github.com/m04kA/SMC-SlottaService/internal/usecase/mark_no_show"
)

type MarkNoShowUseCase interface {
	Execute(ctx context.Context, req *markNoShow.Request) (*markNoShow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
