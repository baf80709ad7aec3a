package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	counter *int64
	err     error
	delay   time.Duration
}

type countingResult struct {
	err error
}

func (r *countingResult) GetError() error { return r.err }

func (j *countingJob) Execute(ctx context.Context) Result {
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &countingResult{err: ctx.Err()}
		}
	}
	atomic.AddInt64(j.counter, 1)
	return &countingResult{err: j.err}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executed int64
	for i := 0; i < 10; i++ {
		pool.Submit(&countingJob{counter: &executed})
	}

	results := pool.Wait()

	if atomic.LoadInt64(&executed) != 10 {
		t.Errorf("expected 10 executions, got %d", executed)
	}
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	for _, result := range results {
		if result.GetError() != nil {
			t.Errorf("unexpected job error: %v", result.GetError())
		}
	}
}

func TestPool_CollectsJobErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var executed int64
	jobErr := errors.New("scan failed")

	pool.Submit(&countingJob{counter: &executed})
	pool.Submit(&countingJob{counter: &executed, err: jobErr})

	results := pool.Wait()

	failures := 0
	for _, result := range results {
		if result.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failed result, got %d", failures)
	}
}

func TestPool_ZeroWorkersFallsBackToOne(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestPool_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 2)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed, delay: 10 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not drain after parent cancellation")
	}

	// The job either never ran or bailed on the dead context; it must
	// not have completed its work
	if n := atomic.LoadInt64(&executed); n != 0 {
		t.Errorf("expected no completed jobs, got %d", n)
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed, delay: 10 * time.Second})

	// Shutdown must return promptly even with a slow job in flight
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not return in time")
	}
}
