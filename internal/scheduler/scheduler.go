package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SlottaService/internal/usecase/run_payouts"
)

// PayoutRunner прогон выплат мастерам
type PayoutRunner interface {
	Execute(ctx context.Context) (*run_payouts.Response, error)
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler фоновые задачи по расписанию
type Scheduler struct {
	cron          *cron.Cron
	payouts       PayoutRunner
	payoutTimeout time.Duration
	logger        Logger
}

// New создает планировщик и регистрирует задачу выплат
// schedule - стандартное cron-выражение из 5 полей, допускается префикс CRON_TZ=
func New(payouts PayoutRunner, schedule string, payoutTimeout time.Duration, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron:          c,
		payouts:       payouts,
		payoutTimeout: payoutTimeout,
		logger:        logger,
	}

	if _, err := c.AddFunc(schedule, s.RunPayouts); err != nil {
		return nil, fmt.Errorf("scheduler: invalid payout schedule %q: %w", schedule, err)
	}

	return s, nil
}

// RunPayouts один прогон выплат с ограничением по времени
func (s *Scheduler) RunPayouts() {
	ctx, cancel := context.WithTimeout(context.Background(), s.payoutTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.payouts.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: payout run failed after %s: %v", time.Since(start), err)
		return
	}
	s.logger.Info("Scheduler: payout run done in %s, paid %d masters, total %s",
		time.Since(start), len(resp.Paid), resp.Total.StringFixed(2))
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("Scheduler: next payout run at %s", e.Next.Format(time.RFC3339))
	}
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}
