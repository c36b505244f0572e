package get_wallet

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/wallet"
)

type WalletService interface {
	Get(ctx context.Context, masterID int64, limit uint64) (*wallet.WalletResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
