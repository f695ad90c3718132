// Copyright 2025 The go-coloc Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for the
// permutation loops of go-coloc. A Pool is created once and shared by many
// significance tests, so repeated tests do not pay goroutine spawn costs.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelForErr(ctx, 1000, func(ctx context.Context, i int) error {
//	    scores[i], err = score(i)
//	    return err
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// run hands body to workers goroutines of the pool and waits for all of
// them to return.
func (p *Pool) run(workers int, body func()) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{fn: body, barrier: &wg}
	}
	wg.Wait()
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing, which balances items of uneven cost. Blocks until all work
// completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	p.run(workers, func() {
		for {
			i := int(next.Add(1) - 1)
			if i >= n {
				return
			}
			fn(i)
		}
	})
}

// ParallelForErr is ParallelForAtomic for fallible, cancellable work. ctx is
// checked before every item. After the first failure no new items start,
// and the error of the lowest failed index is returned. If ctx ends before
// all items ran, ctx.Err() is returned.
func (p *Pool) ParallelForErr(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		errIdx = n
		first  error
		done   atomic.Int64
	)
	p.ParallelForAtomic(n, func(i int) {
		if ctx.Err() != nil {
			return
		}
		if err := fn(ctx, i); err != nil {
			mu.Lock()
			if i < errIdx {
				errIdx, first = i, err
			}
			mu.Unlock()
			cancel()
			return
		}
		done.Add(1)
	})

	if first != nil {
		return first
	}
	if int(done.Load()) < n {
		return context.Cause(ctx)
	}
	return nil
}
