// Package workers runs background components of the client: the serial
// execution context used by the sync engine, the periodic sync job and the
// notification listeners.
package workers

import "context"

// Worker is a background component with an explicit lifecycle.
//
// Start must not block; the worker runs in its own goroutines until ctx is
// cancelled or Stop is called. Stop blocks until those goroutines exit.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
