package worker

import (
	"context"
	"log/slog"
	"time"
)

// Runner materializes whatever recurring work is due at asOf and
// reports how many items it produced.
type Runner interface {
	RunDue(ctx context.Context, asOf time.Time) (int, error)
}

// Scheduler ticks the runner on a fixed interval. One run happens
// immediately on Start so due items never wait out a full interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(r Runner, interval time.Duration) *Scheduler {
	return &Scheduler{runner: r, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.run(ctx)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	n, err := s.runner.RunDue(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("recurring run failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("recurring transactions materialized", "count", n)
	}
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
