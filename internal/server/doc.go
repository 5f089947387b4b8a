// Package server runs an HTTP handler with graceful shutdown.
//
// The record backend serves its API through it until SIGTERM, SIGINT or
// SIGQUIT; the client runs its notification webhook with [Server.Serve]
// under the application's own context.
package server
