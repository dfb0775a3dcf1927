// Package app wires the configuration, login orchestrator, and HTTP server
// together and runs the service until it is signaled to stop.
package app
