package worker

import (
	"context"
	"sync"
)

// Job is one unit of report-building work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed set of goroutines. Jobs share nothing
// beyond the pool context; the report builder they call is read-only.
type Pool struct {
	workers int
	jobs    chan Job
	out     chan Result

	ctx    context.Context
	cancel context.CancelFunc

	wg       sync.WaitGroup
	outOnce  sync.Once
}

// NewPool creates a pool with the given worker count. Non-positive counts
// fall back to a single worker. Cancelling the parent context stops the
// pool: queued jobs are dropped and in-flight jobs see the cancellation.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		// Buffered so submitters rarely block on a busy pool
		jobs:   make(chan Job, workers*2),
		out:    make(chan Result, workers*2),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		// Cancellation wins over a ready queue
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.out <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after cancellation or Shutdown are
// dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	default:
	}

	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for in-flight jobs, and returns every result.
// Call once, after all Submits.
func (p *Pool) Wait() []Result {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeOut()
	}()

	var results []Result
	for res := range p.out {
		results = append(results, res)
	}
	return results
}

// Shutdown cancels the pool context and discards queued jobs
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeOut()
}

func (p *Pool) closeOut() {
	p.outOnce.Do(func() {
		close(p.out)
	})
}
