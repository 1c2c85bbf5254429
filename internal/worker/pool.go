package worker

import (
	"sync"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
)

type task func()

// Pool runs background work (event publishing, recurring runs) off the
// request path on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

// Stop drains the queue and waits for in-flight work.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
