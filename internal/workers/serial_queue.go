// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"
)

type task struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// SerialQueue executes submitted functions one at a time on a single
// goroutine, in the order they are received.
//
// A task must not call Do on the queue that runs it: the nested call would
// wait for a slot that only frees up once the outer task returns.
type SerialQueue struct {
	tasks chan task

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	stopped chan struct{}
	wg      sync.WaitGroup
}

// NewSerialQueue returns a queue that is not running yet.
func NewSerialQueue() *SerialQueue {
	return &SerialQueue{
		tasks:   make(chan task),
		stopped: make(chan struct{}),
	}
}

// Start launches the executor goroutine. Repeated calls are no-ops.
func (q *SerialQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}
	q.started = true

	ctx, q.cancel = context.WithCancel(ctx)
	q.wg.Add(1)
	go q.loop(ctx)
}

// Stop halts the executor after the running task, if any, completes.
func (q *SerialQueue) Stop() {
	q.mu.Lock()
	cancel := q.cancel
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
}

// Do runs fn on the queue and returns its error.
//
// Do gives up with ctx.Err() if ctx ends before the queue accepts the task.
// Once accepted, the task always runs to completion and Do waits for it; fn
// receives ctx and is expected to honor it.
func (q *SerialQueue) Do(ctx context.Context, fn func(context.Context) error) error {
	t := task{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case q.tasks <- t:
	case <-q.stopped:
		return ErrQueueStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-t.result
}

func (q *SerialQueue) loop(ctx context.Context) {
	defer q.wg.Done()
	defer close(q.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q.tasks:
			t.result <- run(t)
		}
	}
}

func run(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return t.fn(t.ctx)
}
