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

func (r *stubResult) GetError() error {
	return r.err
}

// stubJob counts executions and optionally fails or waits
type stubJob struct {
	fail     bool
	wait     time.Duration
	started  func()
	finished func()
	executed *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.started != nil {
		j.started()
	}
	if j.finished != nil {
		defer j.finished()
	}
	if j.wait > 0 {
		select {
		case <-time.After(j.wait):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{err: errors.New("row failed")}
	}
	return &stubResult{}
}

func TestNewPool_Workers(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{requested: 5, expected: 5},
		{requested: 0, expected: 1},
		{requested: -3, expected: 1},
	}

	for _, tt := range tests {
		if got := NewPool(context.Background(), tt.requested).workers; got != tt.expected {
			t.Errorf("NewPool(%d): expected %d workers, got %d", tt.requested, tt.expected, got)
		}
	}
}

func TestPool_Run(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executed int32
	jobs := make([]Job, 200)
	for i := range jobs {
		jobs[i] = &stubJob{executed: &executed, fail: i%4 == 0}
	}

	results := pool.Run(jobs)
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	if n := atomic.LoadInt32(&executed); n != int32(len(jobs)) {
		t.Errorf("expected %d executed jobs, got %d", len(jobs), n)
	}

	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 50 {
		t.Errorf("expected 50 failed jobs, got %d", failed)
	}
}

func TestPool_Run_Empty(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	if results := pool.Run(nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestPool_Run_BoundedConcurrency(t *testing.T) {
	workers := 4
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var current, peak int32
	jobs := make([]Job, 24)
	for i := range jobs {
		jobs[i] = &stubJob{
			wait: 5 * time.Millisecond,
			started: func() {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
			},
			finished: func() { atomic.AddInt32(&current, -1) },
		}
	}

	pool.Run(jobs)

	if p := atomic.LoadInt32(&peak); p > int32(workers) {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_Run_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	pool.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Run([]Job{&stubJob{}, &stubJob{}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run blocked after the context was cancelled")
	}

	if pool.Submit(&stubJob{}) {
		t.Error("Submit accepted a job after cancellation")
	}
}

func TestPool_Run_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	pool.Start()

	started := make(chan struct{}, 100)
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = &stubJob{
			wait:    time.Minute,
			started: func() { started <- struct{}{} },
		}
	}

	done := make(chan []Result)
	go func() { done <- pool.Run(jobs) }()

	<-started
	cancel()

	select {
	case results := <-done:
		if len(results) >= len(jobs) {
			t.Errorf("expected cancellation to cut the run short, got %d results", len(results))
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
