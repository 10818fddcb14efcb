// Package httpserver wraps net/http with graceful shutdown, functional
// options, and a probe handler for liveness/readiness endpoints.
package httpserver
