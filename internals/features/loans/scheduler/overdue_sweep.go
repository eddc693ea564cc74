package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// OverdueSweep periodically moves active loans past their due date to
// overdue. Runs never overlap.
type OverdueSweep struct {
	repo     OverdueMarker
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	log      *zap.Logger
	cron     *cron.Cron
}

func NewOverdueSweep(repo OverdueMarker, interval time.Duration, log *zap.Logger) *OverdueSweep {
	if log == nil {
		log = zap.NewNop()
	}
	l := log.Named("overdue-sweep")
	timeout := time.Minute
	if interval > 0 && interval < timeout {
		timeout = interval
	}
	return &OverdueSweep{
		repo:     repo,
		interval: interval,
		timeout:  timeout,
		now:      func() time.Time { return time.Now().UTC() },
		log:      l,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{l}))),
	}
}

// RunOnce performs a single sweep.
func (s *OverdueSweep) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("loans marked overdue", zap.Int64("count", n))
	}
	return n, nil
}

// Start schedules the sweep every interval. The first run happens one
// interval after start.
func (s *OverdueSweep) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("overdue sweep interval must be positive, got %s", s.interval)
	}
	_, err := s.cron.AddFunc("@every "+s.interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("overdue sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule overdue sweep: %w", err)
	}
	s.log.Info("overdue sweep started", zap.Duration("interval", s.interval))
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *OverdueSweep) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger routes cron's own messages into zap.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Sugar().Debugw(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Sugar().Errorw(msg, append(kv, "error", err)...)
}
