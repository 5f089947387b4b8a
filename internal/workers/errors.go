package workers

import "errors"

var (
	// ErrQueueStopped is returned by SerialQueue.Do when the queue is not
	// accepting tasks.
	ErrQueueStopped = errors.New("serial queue is stopped")
	// ErrTaskPanicked wraps a panic recovered inside a queued task.
	ErrTaskPanicked = errors.New("queued task panicked")
)
