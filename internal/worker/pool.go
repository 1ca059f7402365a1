package worker

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type task func()

// Pool runs submitted jobs on a fixed set of goroutines.
type Pool struct {
	wg    sync.WaitGroup
	jobs  chan task
	depth prometheus.Gauge
	log   *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPool starts n workers over a queue of the given size. depth may be nil.
func NewPool(n, queue int, depth prometheus.Gauge, log *slog.Logger) *Pool {
	if n < 1 {
		n = 1
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{jobs: make(chan task, queue), depth: depth, log: log}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.gauge(-1)
				p.run(job)
			}
		}()
	}
	return p
}

func (p *Pool) run(job task) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("worker job panicked", "panic", rec)
		}
	}()
	job()
}

// Submit queues f without blocking. It reports false when the queue is full or
// the pool is stopped; the job is then dropped.
func (p *Pool) Submit(f task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- f:
		p.gauge(1)
		return true
	default:
		p.log.Warn("worker queue full, job dropped", "capacity", cap(p.jobs))
		return false
	}
}

// Stop stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) gauge(delta float64) {
	if p.depth != nil {
		p.depth.Add(delta)
	}
}
