package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolDrainsQueueOnStop(t *testing.T) {
	p := NewPool(3)
	var ran int32
	for i := 0; i < 50; i++ {
		p.Submit(func() { atomic.AddInt32(&ran, 1) })
	}
	p.Stop()
	if got := atomic.LoadInt32(&ran); got != 50 {
		t.Fatalf("ran %d tasks, want 50", got)
	}
}

type fakeRunner struct {
	calls chan time.Time
}

func (f *fakeRunner) RunDue(ctx context.Context, asOf time.Time) (int, error) {
	select {
	case f.calls <- asOf:
	default:
	}
	return 1, nil
}

func TestSchedulerRunsImmediately(t *testing.T) {
	fr := &fakeRunner{calls: make(chan time.Time, 1)}
	s := NewScheduler(fr, time.Hour)
	s.Start(context.Background())

	select {
	case <-fr.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("no run shortly after Start")
	}
	s.Stop()
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(&fakeRunner{calls: make(chan time.Time, 1)}, time.Hour)
	s.Stop()
}
