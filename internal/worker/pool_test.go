package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	square := func(_ context.Context, n int) int { return n * n }

	if p := NewPool(5, square); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0, square); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1, square); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunPreservesOrder(t *testing.T) {
	pool := NewPool(3, func(_ context.Context, n int) int {
		// Later items finish first
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return n * n
	})

	results := pool.Run(context.Background(), []int{1, 2, 3, 4, 5, 6})

	want := []int{1, 4, 9, 16, 25, 36}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result %d: expected %d, got %d", i, want[i], results[i])
		}
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	var running, peak int32
	pool := NewPool(2, func(_ context.Context, _ int) bool {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return true
	})

	pool.Run(context.Background(), make([]int, 8))

	if peak > 2 {
		t.Errorf("expected at most 2 concurrent jobs, saw %d", peak)
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, s string) string { return s })
	if results := pool.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestPool_ContextPassedThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(ctx context.Context, _ int) error { return ctx.Err() })
	for i, err := range pool.Run(ctx, []int{1, 2, 3}) {
		if err == nil {
			t.Errorf("result %d: expected context error", i)
		}
	}
}
