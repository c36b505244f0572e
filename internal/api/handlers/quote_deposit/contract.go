package quote_deposit

import (
	"context"

	quoteDeposit "github.com/m04kA/SMC-SlottaService/internal/usecase/quote_deposit"
)

type QuoteDepositUseCase interface {
	Execute(ctx context.Context, req *quoteDeposit.Request) (*quoteDeposit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
