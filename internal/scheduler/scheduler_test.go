package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/usecase/run_payouts"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
)

type stubRunner struct {
	calls       int
	hadDeadline bool
	err         error
}

func (r *stubRunner) Execute(ctx context.Context) (*run_payouts.Response, error) {
	r.calls++
	_, r.hadDeadline = ctx.Deadline()
	if r.err != nil {
		return nil, r.err
	}
	return &run_payouts.Response{Total: decimal.NewFromInt(120)}, nil
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&stubRunner{}, "every saturday", time.Minute, logger.NewNop())
	assert.Error(t, err)
}

func TestScheduler_RunPayouts(t *testing.T) {
	runner := &stubRunner{}
	s, err := New(runner, "CRON_TZ=UTC 0 9 * * 6", time.Minute, logger.NewNop())
	require.NoError(t, err)

	s.RunPayouts()
	assert.Equal(t, 1, runner.calls)
	assert.True(t, runner.hadDeadline)

	runner.err = errors.New("db down")
	assert.NotPanics(t, s.RunPayouts)
	assert.Equal(t, 2, runner.calls)
}

func TestScheduler_NextRunIsSaturdayMorning(t *testing.T) {
	s, err := New(&stubRunner{}, "CRON_TZ=UTC 0 9 * * 6", time.Minute, logger.NewNop())
	require.NoError(t, err)

	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	next := entries[0].Schedule.Next(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), next)
}
