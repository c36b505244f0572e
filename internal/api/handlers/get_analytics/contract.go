package get_analytics

import (
	"context"

	"github.com/m04kA/SMC-SlottaService/internal/service/analytics"
)

type AnalyticsService interface {
	GetMasterAnalytics(ctx context.Context, masterID int64) (*analytics.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
