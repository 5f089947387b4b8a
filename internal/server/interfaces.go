package server

import "context"

// Server defines the lifecycle contract of the HTTP server managed by this
// package.
type Server interface {
	// RunServer serves until a termination signal arrives, then shuts down
	// gracefully.
	RunServer()

	// Serve serves until ctx is done or the listener fails. It returns nil
	// after a graceful shutdown.
	Serve(ctx context.Context) error

	// Shutdown stops the server and frees associated resources.
	Shutdown()
}
