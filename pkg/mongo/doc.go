// Package mongo bootstraps the MongoDB layer: client construction with
// connection retries, plus a healthcheck helper for readiness probes.
package mongo
