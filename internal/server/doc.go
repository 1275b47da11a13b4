// Package server runs the local HTTP API of the access-control daemon and
// shuts it down gracefully when its context is cancelled.
package server
