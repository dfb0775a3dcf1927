package http

import "time"

const (
	// DefaultReadTimeout is the server-side timeout for reading a request.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the server-side timeout for writing a response.
	// Login attempts hold the connection while the browser works, so this has
	// to comfortably exceed the sum of the orchestrator's bounded waits.
	DefaultWriteTimeout = 5 * time.Minute

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 15 * time.Second

	// requestIDHeader carries the request ID back to the caller.
	requestIDHeader = "X-Request-Id"
)
