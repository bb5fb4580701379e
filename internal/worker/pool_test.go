package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r stubResult) GetError() error { return r.err }

// stubJob counts executions and can fail or block
type stubJob struct {
	fail    bool
	block   time.Duration
	counter *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.counter != nil {
		atomic.AddInt32(j.counter, 1)
	}
	if j.block > 0 {
		select {
		case <-time.After(j.block):
		case <-ctx.Done():
			return stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return stubResult{err: errors.New("build failed")}
	}
	return stubResult{}
}

func TestNewPoolWorkerCount(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{requested: 4, want: 4},
		{requested: 1, want: 1},
		{requested: 0, want: 1},
		{requested: -3, want: 1},
	}

	for _, tt := range tests {
		if got := NewPool(context.Background(), tt.requested).workers; got != tt.want {
			t.Errorf("NewPool(%d).workers = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestPoolRunsEveryJob(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executions int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&stubJob{counter: &executions})
	}

	results := pool.Wait()

	if len(results) != jobs {
		t.Errorf("expected %d results, got %d", jobs, len(results))
	}
	if got := atomic.LoadInt32(&executions); got != jobs {
		t.Errorf("expected %d executions, got %d", jobs, got)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var inFlight, peak int32
	for i := 0; i < 30; i++ {
		pool.Submit(&gaugeJob{inFlight: &inFlight, peak: &peak})
	}
	pool.Wait()

	if got := atomic.LoadInt32(&peak); got > workers {
		t.Errorf("observed %d concurrent builds, pool allows %d", got, workers)
	}
}

// gaugeJob records the peak number of simultaneously running jobs
type gaugeJob struct {
	inFlight *int32
	peak     *int32
}

func (j *gaugeJob) Execute(ctx context.Context) Result {
	n := atomic.AddInt32(j.inFlight, 1)
	for {
		old := atomic.LoadInt32(j.peak)
		if n <= old || atomic.CompareAndSwapInt32(j.peak, old, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(j.inFlight, -1)
	return stubResult{}
}

func TestPoolCollectsFailures(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(&stubJob{fail: true})
	pool.Submit(&stubJob{})
	pool.Submit(&stubJob{fail: true})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("expected 2 failures, got %d", failures)
	}
}

func TestPoolParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 2)
	pool.Start()

	var executions int32
	for i := 0; i < 5; i++ {
		pool.Submit(&stubJob{counter: &executions})
	}

	results := pool.Wait()

	if got := atomic.LoadInt32(&executions); got != 0 {
		t.Errorf("expected no executions under a cancelled parent context, got %d", got)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after Shutdown")
	}
}

func TestPoolShutdownCancelsInFlight(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	var executions int32
	pool.Submit(&stubJob{block: 500 * time.Millisecond, counter: &executions})

	// Give the worker a moment to pick the job up
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not return")
	}

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Errorf("expected the in-flight job to have started once, got %d", got)
	}
}
