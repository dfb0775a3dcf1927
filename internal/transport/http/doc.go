// Package http exposes the login orchestrator over a thin HTTP envelope.
// It provides the login and health endpoints, request identification,
// and debug-level request/response logging with body truncation.
package http
