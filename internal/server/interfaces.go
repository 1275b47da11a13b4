package server

import "context"

// Server defines the lifecycle of a transport server.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down within
	// the configured grace period. It returns the first serve error.
	Run(ctx context.Context) error
}
