// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel splits per-pixel work into row bands and runs them on
// a work-stealing goroutine pool.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

const (
	// minBandRows is the smallest band worth handing to another goroutine.
	minBandRows = 16

	// minPixels is the smallest image split at all. Smaller images run on
	// the calling goroutine.
	minPixels = 1 << 16
)

// Pool runs tasks on a fixed set of goroutines. Each worker owns a queue
// and steals from the others when its own queue is empty.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool. workers <= 0 means GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), max(8, 4*workers))
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.work(i)
	}
	return p
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case fn := <-own:
			fn()
			continue
		case <-p.done:
			p.drain(own)
			return
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case fn := <-own:
			fn()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Do runs every task and waits for all of them. On a closed pool the
// tasks run on the calling goroutine.
func (p *Pool) Do(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range tasks {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, fn := range tasks {
		task := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			task()
		}
	}
	wg.Wait()
}

// Rows calls fn over the rows [0, height) of a width×height image split
// into disjoint bands [y0, y1). Images of at least minPixels run their
// bands concurrently and Rows returns after all of them. fn must only
// touch its own rows.
func (p *Pool) Rows(width, height int, fn func(y0, y1 int)) {
	bands := min(p.workers, height/minBandRows)
	if width*height < minPixels {
		bands = 1
	}
	if bands <= 1 {
		if height > 0 {
			fn(0, height)
		}
		return
	}

	tasks := make([]func(), bands)
	for b := range bands {
		y0, y1 := b*height/bands, (b+1)*height/bands
		tasks[b] = func() { fn(y0, y1) }
	}
	p.Do(tasks)
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Close stops the workers after the queued tasks ran. It is safe to call
// more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

var shared = sync.OnceValue(func() *Pool { return NewPool(0) })

// Rows runs fn over row bands on the process-wide pool.
func Rows(width, height int, fn func(y0, y1 int)) {
	shared().Rows(width, height, fn)
}
