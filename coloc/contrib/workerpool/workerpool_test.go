// Copyright 2025 The go-coloc Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomic(n, func(i int) {
		results[i] += i * 2
	})
	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelForAtomic(0, func(int) { called = true })
	if called {
		t.Error("n=0 should not call fn")
	}
	if err := pool.ParallelForErr(context.Background(), 0, nil); err != nil {
		t.Errorf("ParallelForErr(n=0) = %v, want nil", err)
	}
}

func TestParallelForErr(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 500
	results := make([]int, n)
	err := pool.ParallelForErr(context.Background(), n, func(_ context.Context, i int) error {
		results[i] = i + 1
		return nil
	})
	if err != nil {
		t.Fatalf("ParallelForErr: %v", err)
	}
	for i, r := range results {
		if r != i+1 {
			t.Fatalf("results[%d] = %d, want %d", i, r, i+1)
		}
	}
}

func TestParallelForErrStopsOnError(t *testing.T) {
	errBoom := errors.New("boom")
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := New(workers)
			defer pool.Close()

			var ran atomic.Int32
			err := pool.ParallelForErr(context.Background(), 10000, func(ctx context.Context, i int) error {
				ran.Add(1)
				if i == 3 {
					return fmt.Errorf("item %d: %w", i, errBoom)
				}
				return nil
			})
			if !errors.Is(err, errBoom) {
				t.Fatalf("err = %v, want errBoom", err)
			}
			if ran.Load() == 10000 {
				t.Error("all items ran despite an early error")
			}
		})
	}
}

func TestParallelForErrLowestIndexWins(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	err := pool.ParallelForErr(context.Background(), 10, func(_ context.Context, i int) error {
		if i >= 2 {
			return fmt.Errorf("item %d", i)
		}
		return nil
	})
	if err == nil || err.Error() != "item 2" {
		t.Errorf("err = %v, want item 2", err)
	}
}

func TestParallelForErrCancelled(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := New(workers)
			defer pool.Close()

			ctx, cancel := context.WithCancel(context.Background())
			var ran atomic.Int32
			err := pool.ParallelForErr(ctx, 10000, func(ctx context.Context, i int) error {
				if ran.Add(1) == 10 {
					cancel()
				}
				return nil
			})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("err = %v, want context.Canceled", err)
			}
			if ran.Load() == 10000 {
				t.Error("all items ran after cancellation")
			}
		})
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})
	err := pool.ParallelForErr(context.Background(), n, func(_ context.Context, i int) error {
		results[i]++
		return nil
	})
	if err != nil {
		t.Fatalf("ParallelForErr on closed pool: %v", err)
	}
	for i := range n {
		if results[i] != i*2+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2+1)
		}
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for b.Loop() {
		pool.ParallelForAtomic(1000, func(i int) {
			_ = i * i
		})
	}
}

func BenchmarkParallelForErr(b *testing.B) {
	pool := New(0)
	defer pool.Close()
	ctx := context.Background()

	for b.Loop() {
		_ = pool.ParallelForErr(ctx, 1000, func(_ context.Context, i int) error {
			_ = i * i
			return nil
		})
	}
}
